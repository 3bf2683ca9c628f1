package shell

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"termshell/internal/logging"
	"termshell/internal/seed"
	"termshell/internal/vfs"
)

var sessionLogger = logging.GetLogger().WithPrefix("session")

// Session is the unit of isolation: one virtual filesystem, one
// working directory, one history list and one alias table. Concurrent
// terminals each get their own session; nothing is shared between
// them, and within a session execution is strictly one command at a
// time.
type Session struct {
	id      string
	fs      *vfs.VFS
	cwd     string
	history *History
	aliases *Aliases

	now  func() time.Time
	rand *rand.Rand
}

// NewSession builds a session over a freshly seeded filesystem,
// starting in the home directory.
func NewSession() (*Session, error) {
	now := time.Now()
	root, err := seed.Build(now)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:      uuid.NewString(),
		fs:      vfs.New(root),
		cwd:     vfs.HomeDir,
		history: &History{},
		aliases: NewAliases(),
		now:     time.Now,
		rand:    rand.New(rand.NewSource(now.UnixNano())),
	}
	sessionLogger.Debug("created session %s", s.id)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// FS returns the session's filesystem.
func (s *Session) FS() *vfs.VFS { return s.fs }

// WorkingDir returns the current working directory.
func (s *Session) WorkingDir() string { return s.cwd }

// Home returns the home directory path.
func (s *Session) Home() string { return vfs.HomeDir }

// History returns a copy of the retained command lines.
func (s *Session) History() []string { return s.history.Entries() }

// ClearHistory drops all retained command lines.
func (s *Session) ClearHistory() { s.history.Clear() }

// Aliases returns the session's alias table.
func (s *Session) Aliases() *Aliases { return s.aliases }

// SetAlias defines or overwrites an alias.
func (s *Session) SetAlias(name, value string) { s.aliases.Set(name, value) }

// SetClock overrides the session clock (and the filesystem's) for
// deterministic tests.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
	s.fs.SetClock(now)
}

// SetRandom overrides the randomness source used by the nondeterministic
// commands. Intended for tests.
func (s *Session) SetRandom(r *rand.Rand) {
	s.rand = r
}

// resolve maps a user path to a normalized absolute path against the
// session's working directory.
func (s *Session) resolve(path string) string {
	return vfs.Resolve(path, s.cwd)
}
