package tracker

import (
	"context"
	"errors"

	"github.com/guttosm/stockpulse/internal/domain/models"
	"github.com/guttosm/stockpulse/internal/quote"
)

// User-facing error messages.
const (
	MsgInvalidSymbol = "Invalid symbol"
	MsgFetchError    = "Error fetching data"
)

// State is the view state of one tracker page. It is one of Idle, Loaded or Failed.
type State interface {
	isState()
}

// Idle is the state of a fresh page: nothing fetched yet.
type Idle struct{}

// Loaded holds the series of the last successful fetch.
type Loaded struct {
	Symbol string
	Series models.Series
}

// Failed holds the message of the last failed fetch. Last is the previous
// successful load, still shown as stale data, or nil.
type Failed struct {
	Symbol  string
	Message string
	Last    *Loaded
}

func (Idle) isState()   {}
func (Loaded) isState() {}
func (Failed) isState() {}

// Outcome is the result of one completed fetch.
type Outcome struct {
	Symbol string
	Series models.Series
	Err    error
}

// MessageFor maps a fetch error onto the message shown to the user.
func MessageFor(err error) string {
	if errors.Is(err, quote.ErrInvalidSymbol) {
		return MsgInvalidSymbol
	}
	return MsgFetchError
}

// Next returns the state after o completes on top of prev.
// A canceled fetch leaves prev untouched.
func Next(prev State, o Outcome) State {
	if o.Err == nil {
		return Loaded{Symbol: o.Symbol, Series: o.Series}
	}
	if errors.Is(o.Err, context.Canceled) {
		return prev
	}
	return Failed{Symbol: o.Symbol, Message: MessageFor(o.Err), Last: lastLoaded(prev)}
}

func lastLoaded(s State) *Loaded {
	switch v := s.(type) {
	case Loaded:
		return &v
	case Failed:
		return v.Last
	default:
		return nil
	}
}

// Visible returns the data a view should draw for s, if any. stale is true
// when the data predates a failed fetch.
func Visible(s State) (data Loaded, stale bool, ok bool) {
	switch v := s.(type) {
	case Loaded:
		return v, false, true
	case Failed:
		if v.Last != nil {
			return *v.Last, true, true
		}
	}
	return Loaded{}, false, false
}

// ErrorText returns the message to show for s, or "".
func ErrorText(s State) string {
	if f, ok := s.(Failed); ok {
		return f.Message
	}
	return ""
}
