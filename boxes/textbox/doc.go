// Package textbox is a client for textbox, the machinebox natural language
// processing box. Textbox splits text into sentences, scores each sentence's
// sentiment, and extracts entities and keywords.
//
// # Basic Usage
//
//	tb := textbox.New("http://localhost:8080")
//	analysis, err := tb.Check(ctx, "Pay William $200 tomorrow")
//	if err != nil {
//	    return err
//	}
//	for _, e := range analysis.Entities(textbox.EntityMoney) {
//	    fmt.Println("amount:", e.Text)
//	}
//
// Entity text may still need processing after analysis; do not rely on entity
// recognition alone for program logic.
package textbox
