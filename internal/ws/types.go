package ws

// server -> client control messages
const (
	MsgReady = "ready"
)

var readyMessage = []byte(`{"type":"` + MsgReady + `"}`)
