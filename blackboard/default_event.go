package blackboard

// NewKeyEvent builds the Event published whenever key is written, carrying
// the value that was accepted onto the RT-path buffer.
func NewKeyEvent(key string, value interface{}) *KeyEvent {
	return &KeyEvent{Key: key, Value: value}
}
