package bjdata

import (
	"github.com/NeuroJSON/bjdata/endian"
	"github.com/NeuroJSON/bjdata/errs"
	"github.com/NeuroJSON/bjdata/internal/buffer"
	"github.com/NeuroJSON/bjdata/internal/visited"
	"github.com/NeuroJSON/bjdata/logx"
)

// defaultMaxDepth bounds recursive descent into composite values
// (sequences, mappings, the default-fallback path). It is not exposed
// as a preference; the §4.8 recursion gate is a safety backstop, not a
// tuning knob.
const defaultMaxDepth = 10000

// Session glues one encoding run's OutputBuffer, preferences, and
// circular-reference tracker together. Not safe for concurrent use; a
// Session serves exactly one root encode_root call.
type Session struct {
	buf     *buffer.OutputBuffer
	engine  endian.EndianEngine
	prefs   *EncoderPreferences
	visited *visited.Tracker[any]
	logger  logx.Logger
	depth   int
	err     error
}

// OpenSession creates a Session. prefs may be nil to use the defaults.
// sink, if non-nil, receives filled pages as Write drains the buffer;
// see internal/buffer for the threshold behavior.
func OpenSession(prefs *EncoderPreferences, sink buffer.Sink) *Session {
	if prefs == nil {
		prefs, _ = NewPreferences()
	}

	engine := endian.GetBigEndianEngine()
	if prefs.LittleEndian {
		engine = endian.GetLittleEndianEngine()
	}

	buf := buffer.New(sink)
	if prefs.EnableDigest {
		buf.EnableDigest()
	}

	logger := prefs.Logger
	if logger == nil {
		logger = logx.NoOp{}
	}

	logger.Debug("session opened", "littleEndian", prefs.LittleEndian, "sink", sink != nil)

	return &Session{
		buf:     buf,
		engine:  engine,
		prefs:   prefs,
		visited: visited.New[any](),
		logger:  logger,
	}
}

// Finalize trims and returns the accumulated bytes (no sink), or
// flushes the final partial page and returns nil (with sink). Once a
// prior EncodeValue call has failed, Finalize returns that same error
// without touching the buffer (§7: "finalize after a failure returns
// the same error"); the buffer's own contents up to the failure point
// are never surfaced.
func (s *Session) Finalize() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	out, err := s.buf.Finalize()
	if err != nil {
		s.logger.Error("finalize failed", "err", err)
		s.err = err
	}

	return out, err
}

// Digest returns the running xxHash64 digest of emitted bytes, and
// whether WithDigest was set for this session.
func (s *Session) Digest() (uint64, bool) {
	return s.buf.Digest()
}
