// Package tagbox is a client for tagbox, the machinebox image tagging box.
//
// Check returns the tags that describe an image, most confident first, and
// any custom tags taught with TeachURL:
//
//	tb := tagbox.New("http://localhost:8080")
//	resp, err := tb.CheckURL(ctx, "https://example.com/dog.jpg")
//	for _, tag := range resp.Tags {
//	    fmt.Println(tag.Tag, *tag.Confidence)
//	}
package tagbox
