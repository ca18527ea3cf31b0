// Package videobox is a client for videobox, the machinebox video analysis
// box. Videobox extracts frames from a video and sends them to facebox,
// tagbox or nudebox, so at least one of those must be running alongside it.
//
// Processing is asynchronous. CheckURL starts a job; poll Status until it is
// done, then fetch Results and Delete them:
//
//	vb := videobox.New("http://localhost:8080")
//	opts := videobox.NewCheckOptions().SkipSeconds(1).FaceboxThreshold(0.6).Finish()
//	video, err := vb.CheckURL(ctx, "https://example.com/clip.mp4", opts)
//	...
//	video, err = vb.Status(ctx, video.ID)
//	if video.Status == videobox.StatusComplete {
//	    results, err := vb.Results(ctx, video.ID)
//	}
package videobox
