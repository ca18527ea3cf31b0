// Package facebox is a client for facebox, the machinebox face detection
// and recognition box.
//
// Check finds faces in an image and names the ones it recognises. Teach
// facebox a face once and it recognises it from then on:
//
//	fb := facebox.New("http://localhost:8080")
//	if err := fb.TeachURL(ctx, "https://example.com/john.jpg", "john1", "John Lennon"); err != nil {
//	    return err
//	}
//	faces, err := fb.CheckURL(ctx, "https://example.com/beatles.jpg")
//
// Images can be sent as a reader, a URL or base64 data.
package facebox
