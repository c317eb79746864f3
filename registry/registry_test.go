package registry

import (
	"errors"
	"testing"

	"github.com/iwahq/numbers/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	payload []byte
}

func (m *fakeMessage) TypeName() string { return "test.Fake" }
func (m *fakeMessage) Unmarshal(payload []byte) error {
	m.payload = append([]byte(nil), payload...)
	return nil
}
func (m *fakeMessage) Marshal() ([]byte, error) { return m.payload, nil }

func newTestRegistry() *Registry {
	r := New()
	r.Register(100, "test.Fake", func() Message { return &fakeMessage{} })
	return r
}

func TestRegisterAndDecode(t *testing.T) {
	r := newTestRegistry()

	msg, err := r.Decode(100, []byte("payload"))
	require.NoError(t, err)

	fake, ok := msg.(*fakeMessage)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), fake.payload)
}

func TestDecodeUnknownType(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Decode(999, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownMessage))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := newTestRegistry()

	assert.Panics(t, func() {
		r.Register(100, "test.Fake", func() Message { return &fakeMessage{} })
	})
}

func TestEncodeResolvesTypeID(t *testing.T) {
	r := newTestRegistry()

	typeID, payload, err := r.Encode(&fakeMessage{payload: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, uint32(100), typeID)
	assert.Equal(t, []byte("x"), payload)
}

func TestEncodeUnknownTypeName(t *testing.T) {
	r := New()

	_, _, err := r.Encode(&fakeMessage{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownMessage))
}

func TestTypeIDOf(t *testing.T) {
	r := newTestRegistry()

	id, ok := r.TypeIDOf("test.Fake")
	require.True(t, ok)
	assert.Equal(t, uint32(100), id)

	_, ok = r.TypeIDOf("test.Missing")
	assert.False(t, ok)
}

func TestNewConstructsZeroValue(t *testing.T) {
	r := newTestRegistry()

	msg, ok := r.New(100)
	require.True(t, ok)
	assert.Equal(t, "test.Fake", msg.TypeName())

	_, ok = r.New(999)
	assert.False(t, ok)
}

func TestRegistriesDoNotShareState(t *testing.T) {
	// messages.init populates Default; this package can't import messages
	// (that would be a cycle), so this test only confirms the registry
	// itself starts out empty and independent per-instance.
	r1 := New()
	r2 := New()

	r1.Register(1, "a", func() Message { return &fakeMessage{} })

	_, ok := r2.TypeIDOf("a")
	assert.False(t, ok, "registries must not share state")
}
