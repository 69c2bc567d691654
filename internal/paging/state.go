package paging

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// pagerState is the serialized navigation position of a Pager. It travels to
// HTTP clients as an opaque token so stateless handlers can resume the
// protocol on the next request.
type pagerState struct {
	Filter  string   `json:"f,omitempty"`
	Page    int      `json:"p"`
	First   Cursor   `json:"a,omitempty"`
	Last    Cursor   `json:"z,omitempty"`
	History []Cursor `json:"h,omitempty"`
	HasNext bool     `json:"n"`
}

// State serializes the pager's current position.
func (p *Pager[T]) State() string {
	p.mu.Lock()
	st := pagerState{
		Filter:  p.filter,
		Page:    p.page,
		First:   p.first,
		Last:    p.last,
		History: p.history,
		HasNext: p.hasNext,
	}
	p.mu.Unlock()

	raw, err := json.Marshal(st)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Restore loads a position produced by State. An empty token leaves the
// pager at its initial position.
func (p *Pager[T]) Restore(token string) error {
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("decode page state: %w", err)
	}
	var st pagerState
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("parse page state: %w", err)
	}
	if st.Page < 1 {
		st.Page = 1
	}

	p.mu.Lock()
	p.filter = st.Filter
	p.page = st.Page
	p.first = st.First
	p.last = st.Last
	p.history = st.History
	p.hasNext = st.HasNext
	p.mu.Unlock()
	return nil
}
