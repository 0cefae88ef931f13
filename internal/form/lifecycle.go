package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hr-dashboard/internal/shared/apperror"
)

type State string

const (
	StateClosed     State = "closed"
	StateOpen       State = "open"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

var ErrIllegalTransition = errors.New("form: illegal state transition")

// Lifecycle adalah state machine satu modal form:
//
//	closed -> open -> validating -> submitting -> closed
//	validating -> open  (validasi gagal)
//	submitting -> open  (mutation gagal)
type Lifecycle struct {
	mu    sync.Mutex
	state State
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateClosed}
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lifecycle) transition(from, to State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != from {
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrIllegalTransition, from, to, l.state)
	}
	l.state = to
	return nil
}

func (l *Lifecycle) Open() error {
	return l.transition(StateClosed, StateOpen)
}

// Close membatalkan form yang sedang terbuka.
func (l *Lifecycle) Close() error {
	return l.transition(StateOpen, StateClosed)
}

// Submit memvalidasi input lalu memanggil call tepat satu kali. Jika validasi
// gagal, call tidak dipanggil dan form kembali ke open.
func (l *Lifecycle) Submit(ctx context.Context, input any, call func(context.Context) error) error {
	if err := l.transition(StateOpen, StateValidating); err != nil {
		return err
	}

	if err := Validate(input); err != nil {
		_ = l.transition(StateValidating, StateOpen)
		return err
	}

	if err := l.transition(StateValidating, StateSubmitting); err != nil {
		return err
	}

	if err := call(ctx); err != nil {
		_ = l.transition(StateSubmitting, StateOpen)
		return err
	}

	return l.transition(StateSubmitting, StateClosed)
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification menggantikan toast: dikirim bersama response mutation.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message}
}

// Failure memakai pesan dari backend HR bila ada.
func Failure(err error) Notification {
	return Notification{Level: LevelError, Message: apperror.ToHTTP(err).Message}
}
