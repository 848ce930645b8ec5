package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// TrackingService records one experiment run per inference against an
// MLflow-compatible tracking server. Tracking is strictly best-effort: an
// unreachable server disables the feature for that call, never the request.
type TrackingService struct {
	baseURL      string
	experiment   string
	modelVersion string
	client       *http.Client

	mu           sync.Mutex
	experimentID string
}

// InferenceRun captures what gets logged for a single inference.
type InferenceRun struct {
	TitleLength    int
	TextLength     int
	LatencySeconds float64
	Confidence     *float64
}

// NewTrackingService returns a tracking client, or nil when no tracking URI
// is configured.
func NewTrackingService(trackingURI, experimentName, modelVersion string) *TrackingService {
	if trackingURI == "" {
		return nil
	}
	return &TrackingService{
		baseURL:      trackingURI,
		experiment:   experimentName,
		modelVersion: modelVersion,
		client:       &http.Client{Timeout: 3 * time.Second},
	}
}

// LogInference creates a finished run holding the inference's parameters and
// metrics, mirroring what the training pipeline logs for its own runs.
func (t *TrackingService) LogInference(ctx context.Context, run InferenceRun) error {
	expID, err := t.ensureExperiment(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()

	var created struct {
		Run struct {
			Info struct {
				RunID string `json:"run_id"`
			} `json:"info"`
		} `json:"run"`
	}
	err = t.post(ctx, "runs/create", map[string]any{
		"experiment_id": expID,
		"run_name":      "inference_instance",
		"start_time":    now,
	}, &created)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	runID := created.Run.Info.RunID

	params := []map[string]string{
		{"key": "title_length", "value": strconv.Itoa(run.TitleLength)},
		{"key": "text_length", "value": strconv.Itoa(run.TextLength)},
		{"key": "model_version", "value": t.modelVersion},
	}
	metrics := []map[string]any{
		{"key": "latency_sec", "value": run.LatencySeconds, "timestamp": now},
	}
	if run.Confidence != nil {
		metrics = append(metrics, map[string]any{
			"key": "confidence", "value": *run.Confidence, "timestamp": now,
		})
	}

	err = t.post(ctx, "runs/log-batch", map[string]any{
		"run_id":  runID,
		"params":  params,
		"metrics": metrics,
	}, nil)
	if err != nil {
		return fmt.Errorf("log batch: %w", err)
	}

	err = t.post(ctx, "runs/update", map[string]any{
		"run_id":   runID,
		"status":   "FINISHED",
		"end_time": time.Now().UnixMilli(),
	}, nil)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	return nil
}

// ensureExperiment resolves the experiment id once, creating the experiment
// if the server does not know it yet.
func (t *TrackingService) ensureExperiment(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.experimentID != "" {
		return t.experimentID, nil
	}

	var found struct {
		Experiment struct {
			ExperimentID string `json:"experiment_id"`
		} `json:"experiment"`
	}
	err := t.get(ctx, "experiments/get-by-name?experiment_name="+url.QueryEscape(t.experiment), &found)
	if err == nil && found.Experiment.ExperimentID != "" {
		t.experimentID = found.Experiment.ExperimentID
		return t.experimentID, nil
	}

	var created struct {
		ExperimentID string `json:"experiment_id"`
	}
	err = t.post(ctx, "experiments/create", map[string]any{"name": t.experiment}, &created)
	if err != nil {
		return "", fmt.Errorf("ensure experiment %q: %w", t.experiment, err)
	}

	t.experimentID = created.ExperimentID
	return t.experimentID, nil
}

func (t *TrackingService) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint(path), nil)
	if err != nil {
		return err
	}
	return t.do(req, out)
}

func (t *TrackingService) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(path), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, out)
}

func (t *TrackingService) do(req *http.Request, out any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tracking server returned %d: %s", resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (t *TrackingService) endpoint(path string) string {
	return t.baseURL + "/api/2.0/mlflow/" + path
}
