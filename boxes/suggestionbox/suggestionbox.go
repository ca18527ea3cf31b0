package suggestionbox

import (
	"context"
	"io"
	"net/url"

	"github.com/petal-labs/machinebox/core"
)

// BoxID identifies suggestionbox in errors, telemetry and the box registry.
const BoxID = "suggestionbox"

// Suggestionbox is a client for a suggestionbox instance.
// Suggestionbox is safe for concurrent use. It caches nothing; the box owns
// all model state.
type Suggestionbox struct {
	*core.Client
}

// New creates a suggestionbox client for the box at baseURL.
func New(baseURL string, opts ...core.Option) *Suggestionbox {
	opts = append([]core.Option{core.WithBoxID(BoxID)}, opts...)
	return &Suggestionbox{Client: core.New(baseURL, opts...)}
}

func modelPath(id, suffix string) string {
	return "/suggestionbox/models/" + url.PathEscape(id) + suffix
}

// CreateModel creates a model and returns it as the box sees it, including
// any ID and options the box filled in.
func (sb *Suggestionbox) CreateModel(ctx context.Context, model Model) (*Model, error) {
	return core.Call[Model](ctx, sb.Client, core.Post("create_model", "/suggestionbox/models"), model)
}

// GetModel fetches a model.
func (sb *Suggestionbox) GetModel(ctx context.Context, id string) (*Model, error) {
	if id == "" {
		return nil, ErrModelIDRequired
	}
	return core.Call[Model](ctx, sb.Client, core.Get("get_model", modelPath(id, "")), nil)
}

// ListModels lists every model on the box.
func (sb *Suggestionbox) ListModels(ctx context.Context) ([]Model, error) {
	list, err := core.Call[modelList](ctx, sb.Client, core.Get("list_models", "/suggestionbox/models"), nil)
	if err != nil {
		return nil, err
	}
	return list.Models, nil
}

// DeleteModel deletes a model. Deleting a missing model fails with core.ErrNotFound.
func (sb *Suggestionbox) DeleteModel(ctx context.Context, id string) error {
	if id == "" {
		return ErrModelIDRequired
	}
	return core.Exec(ctx, sb.Client, core.Delete("delete_model", modelPath(id, "")), nil)
}

// ModelStats reports prediction and reward counts for a model.
func (sb *Suggestionbox) ModelStats(ctx context.Context, id string) (*ModelStats, error) {
	if id == "" {
		return nil, ErrModelIDRequired
	}
	return core.Call[ModelStats](ctx, sb.Client, core.Get("model_stats", modelPath(id, "/stats")), nil)
}

// Predict asks a model for the best choices given the request inputs.
func (sb *Suggestionbox) Predict(ctx context.Context, modelID string, req PredictionRequest) (*PredictionResponse, error) {
	if modelID == "" {
		return nil, ErrModelIDRequired
	}
	return core.Call[PredictionResponse](ctx, sb.Client, core.Post("predict", modelPath(modelID, "/predict")), req)
}

// Reward tells the model a prediction was successful. value is the reward
// weight, usually 1.
func (sb *Suggestionbox) Reward(ctx context.Context, modelID, rewardID string, value float64) error {
	if modelID == "" {
		return ErrModelIDRequired
	}
	if rewardID == "" {
		return ErrRewardIDRequired
	}
	return core.Exec(ctx, sb.Client, core.Post("reward", modelPath(modelID, "/rewards")), rewardRequest{
		RewardID: rewardID,
		Value:    value,
	})
}

// DownloadState writes the binary state file of a model to w and returns the
// number of bytes written.
func (sb *Suggestionbox) DownloadState(ctx context.Context, modelID string, w io.Writer) (int64, error) {
	if modelID == "" {
		return 0, ErrModelIDRequired
	}
	return core.Download(ctx, sb.Client, core.Get("download_state", "/suggestionbox/state/"+url.PathEscape(modelID)), w)
}

// UploadState restores a model from a state file and returns the model it held.
func (sb *Suggestionbox) UploadState(ctx context.Context, r io.Reader) (*Model, error) {
	payload := core.NewMultipart().File("state", "state.suggestionbox", r)
	return core.Call[Model](ctx, sb.Client, core.Post("upload_state", "/suggestionbox/state"), payload)
}

// UploadStateURL makes the box download a state file from stateURL and
// returns the model it held.
func (sb *Suggestionbox) UploadStateURL(ctx context.Context, stateURL string) (*Model, error) {
	payload := core.Form{"url": {stateURL}}
	return core.Call[Model](ctx, sb.Client, core.Post("upload_state", "/suggestionbox/state"), payload)
}

// Compile-time check that Suggestionbox implements core.Box.
var _ core.Box = (*Suggestionbox)(nil)
