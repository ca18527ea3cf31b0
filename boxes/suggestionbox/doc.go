// Package suggestionbox is a client for suggestionbox, the machinebox
// recommendation box.
//
// A model holds a set of choices, each described by features. Ask the model
// to predict the best choices for some input features, then reward the
// predictions that worked so the model learns.
//
// # Basic Usage
//
//	sb := suggestionbox.New("http://localhost:8080")
//
//	model := suggestionbox.NewModel().
//	    Named("Articles").
//	    ID("articles").
//	    Choice("article1", suggestionbox.Text("title", "Machine Box releases new product")).
//	    Choice("article2", suggestionbox.Text("title", "The Beatles reunite")).
//	    Finish()
//	if _, err := sb.CreateModel(ctx, model); err != nil {
//	    return err
//	}
//
//	resp, err := sb.Predict(ctx, "articles", suggestionbox.PredictionRequest{
//	    Inputs: []suggestionbox.Feature{
//	        suggestionbox.Number("age", 42),
//	        suggestionbox.Keyword("country", "USA"),
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	// later, when the user picked the first choice
//	err = sb.Reward(ctx, "articles", resp.Choices[0].RewardID, 1)
//
// Rewards must be posted within the model's RewardExpirationSeconds.
//
// # State
//
// DownloadState writes a model's binary state file; UploadState and
// UploadStateURL restore it, on this box or another one.
package suggestionbox
