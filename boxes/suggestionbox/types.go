package suggestionbox

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/petal-labs/machinebox/core"
)

// Model is a suggestionbox model.
type Model struct {
	// ID is assigned by the box when left empty.
	ID      string        `json:"id,omitempty"`
	Name    string        `json:"name"`
	Options *ModelOptions `json:"options,omitempty"`
	Choices []Choice      `json:"choices,omitempty" validate:"dive"`
}

// ModelOptions tunes how a model learns.
type ModelOptions struct {
	// RewardExpirationSeconds is the longest a reward may follow its prediction.
	RewardExpirationSeconds int `json:"reward_expiration_seconds,omitempty"`
	// Epsilon sets a fixed explore/exploit ratio.
	Epsilon float64 `json:"epsilon,omitempty"`
	// SoftmaxLambda enables an adaptive explore/exploit ratio.
	SoftmaxLambda float64 `json:"softmax_lambda,omitempty"`
	Ngrams        int     `json:"ngrams,omitempty"`
	Skipgrams     int     `json:"skipgrams,omitempty"`
}

// Choice is something the model can predict, described by features.
type Choice struct {
	ID       string    `json:"id" validate:"required"`
	Features []Feature `json:"features" validate:"dive"`
}

// FeatureType tells the box how to treat a feature value.
type FeatureType string

// Feature types.
const (
	FeatureNumber      FeatureType = "number"
	FeatureText        FeatureType = "text"
	FeatureKeyword     FeatureType = "keyword"
	FeatureList        FeatureType = "list"
	FeatureImageURL    FeatureType = "image_url"
	FeatureImageBase64 FeatureType = "image_base64"
)

// Feature describes an input or a choice, such as age:28 or location:London.
type Feature struct {
	Key   string      `json:"key" validate:"required"`
	Value string      `json:"value"`
	Type  FeatureType `json:"type" validate:"required"`
}

// Number returns a numerical feature.
func Number(key string, n float64) Feature {
	return Feature{Key: key, Value: strconv.FormatFloat(n, 'f', -1, 64), Type: FeatureNumber}
}

// Text returns a text feature. The box tokenizes text; use Keyword to avoid that.
func Text(key, text string) Feature {
	return Feature{Key: key, Value: text, Type: FeatureText}
}

// Keyword returns a single untokenized keyword feature.
func Keyword(key, keyword string) Feature {
	return Feature{Key: key, Value: keyword, Type: FeatureKeyword}
}

// List returns a feature holding several keywords.
func List(key string, keywords ...string) Feature {
	return Feature{Key: key, Value: strings.Join(keywords, ","), Type: FeatureList}
}

// ImageURL returns a feature pointing at an image.
func ImageURL(key, url string) Feature {
	return Feature{Key: key, Value: url, Type: FeatureImageURL}
}

// ImageBase64 returns a feature holding a base64 encoded image.
func ImageBase64(key, data string) Feature {
	return Feature{Key: key, Value: data, Type: FeatureImageBase64}
}

// ParseFeatureType parses a feature type name.
func ParseFeatureType(s string) (FeatureType, error) {
	switch t := FeatureType(s); t {
	case FeatureNumber, FeatureText, FeatureKeyword, FeatureList, FeatureImageURL, FeatureImageBase64:
		return t, nil
	}
	return "", fmt.Errorf("unknown feature type %q", s)
}

// ModelStats reports how a model has been used.
type ModelStats struct {
	Predictions  int     `json:"predictions"`
	Rewards      int     `json:"rewards"`
	RewardRatio  float64 `json:"reward_ratio"`
	Explores     int     `json:"explores"`
	Exploits     int     `json:"exploits"`
	ExploreRatio float64 `json:"explore_ratio"`
}

// PredictionRequest asks a model for predictions.
type PredictionRequest struct {
	Inputs []Feature `json:"inputs"`
}

// PredictionResponse lists predicted choices, best first.
type PredictionResponse struct {
	Choices []Prediction `json:"choices" validate:"dive"`
}

// Prediction is one predicted choice.
type Prediction struct {
	ID string `json:"id" validate:"required"`
	// RewardID is passed to Reward if this prediction turns out well.
	RewardID string  `json:"reward_id" validate:"required"`
	Score    float64 `json:"score"`
}

type rewardRequest struct {
	RewardID string  `json:"reward_id"`
	Value    float64 `json:"value"`
}

type modelList struct {
	Models []Model `json:"models" validate:"dive"`
}

// LoadModel reads a JSON model definition, such as a file exported from the
// suggestionbox console.
func LoadModel(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := (core.JSONCodec{}).Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return &m, nil
}
