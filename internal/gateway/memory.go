package gateway

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Submission is one recorded SMS or call accepted by the MemoryGateway.
type Submission struct {
	Kind string // "sms" or "call"
	To   string
	Body string // SMS body or voice markup
	SID  string
}

// MemoryGateway records submissions instead of sending them, and can be
// scripted to fail for chosen targets.
type MemoryGateway struct {
	mu          sync.Mutex
	submissions []Submission
	failSMS     map[string]error
	callErr     error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{failSMS: make(map[string]error)}
}

// FailSMSTo makes every SMS submission to the given number return err.
func (g *MemoryGateway) FailSMSTo(to string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failSMS[to] = err
}

// FailCalls makes every PlaceCall return err.
func (g *MemoryGateway) FailCalls(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.callErr = err
}

func (g *MemoryGateway) SendMessage(ctx context.Context, to, body string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failSMS[to]; err != nil {
		return "", err
	}
	sid := "SM" + strings.ReplaceAll(uuid.NewString(), "-", "")
	g.submissions = append(g.submissions, Submission{Kind: "sms", To: to, Body: body, SID: sid})
	return sid, nil
}

func (g *MemoryGateway) PlaceCall(ctx context.Context, to, voiceMarkup string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.callErr != nil {
		return "", g.callErr
	}
	sid := "CA" + strings.ReplaceAll(uuid.NewString(), "-", "")
	g.submissions = append(g.submissions, Submission{Kind: "call", To: to, Body: voiceMarkup, SID: sid})
	return sid, nil
}

// Submissions returns a copy of everything the gateway accepted, in order.
func (g *MemoryGateway) Submissions() []Submission {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Submission, len(g.submissions))
	copy(out, g.submissions)
	return out
}
