// Package eventcast publishes one canonical event announcement to
// multiple platforms at once: a blog post, a calendar entry, a
// community scheduled event, and a copy-paste block for channels
// without an API.
//
// Basic usage:
//
//	cast, err := eventcast.New(
//		eventcast.WithBlog(&blog.Config{BaseURL: "https://blog.example.com", APIKey: key}),
//		eventcast.WithCalendar(&calendar.Config{BaseURL: calURL, Token: token, CalendarID: "team"}),
//		eventcast.WithManual(),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cast.Close(context.Background())
//
//	report, err := cast.Publish(ctx, eventcast.Input{
//		Title: "Boba & Banter",
//		Start: "2026-02-22T15:00:00-08:00",
//		End:   "2026-02-22T17:00:00-08:00",
//	}, []string{"blog", "calendar", "manual"}, eventcast.Parallel)
//
// Review-capable platforms pause in the session until a Decider
// approves, requests changes, or abandons the draft; wire a custom
// decider with WithDecider to drive that interactively.
package eventcast
