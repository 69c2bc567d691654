package paging

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource serves a fixed backing sequence already in store order. Cursors
// encode positions in that sequence; the filter keeps values sharing its
// prefix.
type memSource struct {
	values []string
	calls  int
}

func (s *memSource) FetchPage(_ context.Context, req FetchRequest) ([]Item[string], error) {
	s.calls++

	matches := func(v string) bool {
		return req.Filter == "" || strings.HasPrefix(v, req.Filter)
	}
	at := func(c Cursor) int {
		i, err := strconv.Atoi(string(c))
		if err != nil {
			return -1
		}
		return i
	}
	item := func(i int) Item[string] {
		return Item[string]{Value: s.values[i], Cursor: Cursor(strconv.Itoa(i))}
	}

	var out []Item[string]
	switch {
	case req.Before != nil:
		boundary := at(req.Before)
		for i := 0; i < boundary && i < len(s.values); i++ {
			if matches(s.values[i]) {
				out = append(out, item(i))
			}
		}
		if len(out) > req.Limit {
			out = out[len(out)-req.Limit:]
		}
	case req.After != nil:
		for i := at(req.After) + 1; i < len(s.values) && len(out) < req.Limit; i++ {
			if matches(s.values[i]) {
				out = append(out, item(i))
			}
		}
	default:
		for i := 0; i < len(s.values) && len(out) < req.Limit; i++ {
			if matches(s.values[i]) {
				out = append(out, item(i))
			}
		}
	}
	return out, nil
}

func seq(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i)
	}
	return out
}

func TestPagerForwardNavigation(t *testing.T) {
	src := &memSource{values: seq("o", 25)}
	p := New[string](src, 10)
	ctx := context.Background()

	res, err := p.Load(ctx, First, "")
	require.NoError(t, err)
	assert.Equal(t, seq("o", 25)[:10], res.Items)
	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrev)
	assert.Equal(t, 1, res.Page)

	res, err = p.GoNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "o10", res.Items[0])
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
	assert.Equal(t, 2, res.Page)

	res, err = p.GoNext(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, "o20", res.Items[0])
	assert.False(t, res.HasNext)
	assert.Equal(t, 3, res.Page)
}

func TestPagerNextWithoutMorePagesIsNoOp(t *testing.T) {
	src := &memSource{values: seq("o", 5)}
	p := New[string](src, 10)
	ctx := context.Background()

	res, err := p.Load(ctx, First, "")
	require.NoError(t, err)
	assert.False(t, res.HasNext)
	callsAfterFirst := src.calls

	res, err = p.GoNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, src.calls, "GoNext must not hit the store when hasNext is false")
	assert.Equal(t, 1, res.Page)
}

func TestPagerNextWithoutCursorIsNoOp(t *testing.T) {
	src := &memSource{values: seq("o", 5)}
	p := New[string](src, 10)

	res, err := p.Load(context.Background(), Next, "")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, src.calls)
}

func TestPagerBackwardNavigation(t *testing.T) {
	src := &memSource{values: seq("o", 20)}
	p := New[string](src, 10)
	ctx := context.Background()

	_, err := p.Load(ctx, First, "")
	require.NoError(t, err)

	res, err := p.GoNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "o10", res.Items[0])
	assert.Equal(t, 2, res.Page)

	res, err = p.GoPrev(ctx)
	require.NoError(t, err)
	assert.Equal(t, "o0", res.Items[0])
	assert.Len(t, res.Items, 10)
	assert.Equal(t, 1, res.Page)
	assert.False(t, res.HasPrev)
}

func TestPagerPrevIsNoOpWithoutHistory(t *testing.T) {
	src := &memSource{values: seq("o", 20)}
	p := New[string](src, 10)
	ctx := context.Background()

	_, err := p.Load(ctx, First, "")
	require.NoError(t, err)
	calls := src.calls

	res, err := p.GoPrev(ctx)
	require.NoError(t, err)
	assert.Equal(t, calls, src.calls)
	assert.Equal(t, 1, res.Page)
}

func TestPagerSetFilterResetsNavigation(t *testing.T) {
	values := append(seq("a", 15), seq("b", 5)...)
	src := &memSource{values: values}
	p := New[string](src, 10)
	ctx := context.Background()

	_, err := p.Load(ctx, First, "a")
	require.NoError(t, err)
	_, err = p.GoNext(ctx)
	require.NoError(t, err)

	res, err := p.SetFilter(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.False(t, res.HasPrev)
	assert.False(t, res.HasNext)
	assert.Equal(t, seq("b", 5), res.Items)
}

func TestPagerStateRoundTrip(t *testing.T) {
	src := &memSource{values: seq("o", 25)}
	p := New[string](src, 10)
	ctx := context.Background()

	_, err := p.Load(ctx, First, "")
	require.NoError(t, err)
	token := p.State()
	require.NotEmpty(t, token)

	resumed := New[string](src, 10)
	require.NoError(t, resumed.Restore(token))

	res, err := resumed.GoNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "o10", res.Items[0])
	assert.Equal(t, 2, res.Page)
	assert.True(t, res.HasPrev)
}

func TestPagerRestoreRejectsGarbage(t *testing.T) {
	p := New[string](&memSource{}, 10)
	assert.Error(t, p.Restore("not base64!!"))
}

// gatedSource hands each FetchPage call to the test, which decides when and
// with what to answer it.
type gatedSource struct {
	reqs chan gatedReq
}

type gatedReq struct {
	req  FetchRequest
	resp chan []Item[string]
}

func (s *gatedSource) FetchPage(_ context.Context, req FetchRequest) ([]Item[string], error) {
	r := gatedReq{req: req, resp: make(chan []Item[string])}
	s.reqs <- r
	return <-r.resp, nil
}

func items(values []string, startIdx int) []Item[string] {
	out := make([]Item[string], len(values))
	for i, v := range values {
		out[i] = Item[string]{Value: v, Cursor: Cursor(strconv.Itoa(startIdx + i))}
	}
	return out
}

func TestPagerStaleResponseIsDiscarded(t *testing.T) {
	src := &gatedSource{reqs: make(chan gatedReq, 2)}
	p := New[string](src, 2)
	ctx := context.Background()

	type outcome struct {
		res *Result[string]
		err error
	}

	// Request A: first page, left hanging.
	aDone := make(chan outcome, 1)
	go func() {
		res, err := p.Load(ctx, First, "")
		aDone <- outcome{res, err}
	}()
	reqA := <-src.reqs

	// Request B: issued while A is in flight.
	bDone := make(chan outcome, 1)
	go func() {
		res, err := p.Load(ctx, First, "")
		bDone <- outcome{res, err}
	}()
	reqB := <-src.reqs

	// B resolves first and wins.
	reqB.resp <- items([]string{"b0", "b1", "b2"}, 10)
	b := <-bDone
	require.NoError(t, b.err)
	assert.Equal(t, []string{"b0", "b1"}, b.res.Items)
	assert.True(t, b.res.HasNext)

	// A resolves late: its result must be dropped without touching state.
	reqA.resp <- items([]string{"a0", "a1"}, 0)
	a := <-aDone
	require.True(t, errors.Is(a.err, ErrStale))
	assert.Nil(t, a.res)

	// The pager still navigates from B's cursors.
	nextDone := make(chan outcome, 1)
	go func() {
		res, err := p.Load(ctx, Next, "")
		nextDone <- outcome{res, err}
	}()
	reqNext := <-src.reqs
	assert.Equal(t, Cursor("11"), reqNext.req.After, "next must start after B's last cursor")
	reqNext.resp <- items([]string{"b2"}, 12)
	n := <-nextDone
	require.NoError(t, n.err)
	assert.Equal(t, []string{"b2"}, n.res.Items)
}
