// Package watcher turns files dropped into an inbox directory into batches
// of texts.
//
// The Watcher listens for fsnotify create and write events, waits for a
// file to go quiet for the debounce period, parses it with the batch
// package and delivers the texts it has not delivered before on Batches.
// Appending lines to a file yields only the new lines; a file that is
// replaced or rewritten is read again from the start. It never records anything
// itself: the goroutine that owns the history store drains Batches and
// records the texts, so the store keeps a single owner.
//
// Example usage:
//
//	w, err := watcher.New(dir, watcher.WithDebounce(500*time.Millisecond))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
//
//	for b := range w.Batches() {
//		res, err := batch.Analyze(st, b.Texts, nil)
//		...
//	}
package watcher
