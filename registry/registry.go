// Package registry maps the 16-bit numeric message type IDs embedded in
// IWA archive headers to concrete decoders/encoders, and back.
//
// Apple ships no .proto descriptors with a Numbers document; the mapping
// from type ID to message shape is bootstrapped offline (historically, by
// walking the Numbers binary's own protobuf descriptor pool) and is treated
// here as an immutable configuration input, exactly as spec.md §9 describes
// it. The registry itself is the one place that table lives.
package registry

import (
	"fmt"
	"sync"

	"github.com/iwahq/numbers/internal/errs"
)

// Message is anything the registry can decode into and re-encode from.
// Concrete implementations live in package messages.
type Message interface {
	// TypeName returns the fully-qualified protobuf message name, e.g.
	// "TST.TableInfoArchive".
	TypeName() string
	// Unmarshal decodes payload into the receiver, replacing its contents.
	Unmarshal(payload []byte) error
	// Marshal serializes the receiver's current contents.
	Marshal() ([]byte, error)
}

// Factory constructs a zero-value Message for a given type ID.
type Factory func() Message

// Registry is a static type-ID <-> message-type bidirectional map.
type Registry struct {
	mu        sync.RWMutex
	factories map[uint32]Factory
	names     map[string]uint32
}

// New creates an empty registry. Use Register to populate it, or use the
// package-level Default registry which is pre-populated by messages.init.
func New() *Registry {
	return &Registry{
		factories: make(map[uint32]Factory),
		names:     make(map[string]uint32),
	}
}

// Register associates a type ID with a message factory and its
// fully-qualified name. Calling Register twice for the same ID panics: the
// bootstrap table is asserted to be internally consistent.
func (r *Registry) Register(typeID uint32, name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[typeID]; exists {
		panic(fmt.Sprintf("registry: duplicate registration for type %d (%s)", typeID, name))
	}

	r.factories[typeID] = f
	r.names[name] = typeID
}

// Decode constructs a zero-value message for typeID and unmarshals payload
// into it. Returns errs.ErrUnknownMessage wrapped with the type ID when no
// factory is registered.
func (r *Registry) Decode(typeID uint32, payload []byte) (Message, error) {
	r.mu.RLock()
	f, ok := r.factories[typeID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: type %d: %w", typeID, errs.ErrUnknownMessage)
	}

	msg := f()
	if err := msg.Unmarshal(payload); err != nil {
		return nil, fmt.Errorf("registry: decode type %d: %w", typeID, err)
	}

	return msg, nil
}

// Encode serializes msg and resolves its type ID from its TypeName.
func (r *Registry) Encode(msg Message) (typeID uint32, payload []byte, err error) {
	typeID, ok := r.TypeIDOf(msg.TypeName())
	if !ok {
		return 0, nil, fmt.Errorf("registry: %s: %w", msg.TypeName(), errs.ErrUnknownMessage)
	}

	payload, err = msg.Marshal()
	if err != nil {
		return 0, nil, fmt.Errorf("registry: encode %s: %w", msg.TypeName(), err)
	}

	return typeID, payload, nil
}

// TypeIDOf resolves a fully-qualified protobuf message name to its
// numeric type ID.
func (r *Registry) TypeIDOf(fullName string) (uint32, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.names[fullName]
	return id, ok
}

// New constructs a zero-value message for typeID without decoding, or
// (nil, false) if typeID is unregistered.
func (r *Registry) New(typeID uint32) (Message, bool) {
	r.mu.RLock()
	f, ok := r.factories[typeID]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}

	return f(), true
}

// Default is the process-wide registry populated by package messages at
// init time with every message type this library understands.
var Default = New()
