package feed

// Mailbox hands updates from the poller to the UI. It holds at most one
// update; a newer Put replaces an undelivered one.
type Mailbox struct {
	ch chan Update
}

// NewMailbox creates an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan Update, 1)}
}

// Put stores u, dropping any update the reader has not taken yet.
// Put never blocks. It must only be called from one goroutine.
func (m *Mailbox) Put(u Update) {
	for {
		select {
		case m.ch <- u:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// C delivers updates.
func (m *Mailbox) C() <-chan Update {
	return m.ch
}
