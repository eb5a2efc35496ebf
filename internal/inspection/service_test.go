package inspection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carscope/carscope/pkg/scoring"
)

type rosterFunc func(ctx context.Context, companyID, inspectorID string) error

func (f rosterFunc) Authorize(ctx context.Context, companyID, inspectorID string) error {
	return f(ctx, companyID, inspectorID)
}

func TestCreateChecksRosterBeforeWriting(t *testing.T) {
	errUnknown := errors.New("unknown company")
	var called bool
	roster := rosterFunc(func(_ context.Context, companyID, inspectorID string) error {
		called = true
		assert.Equal(t, "c1", companyID)
		assert.Equal(t, "i1", inspectorID)
		return errUnknown
	})

	// A nil db proves the roster runs before any query.
	svc := NewService(nil, nil, scoring.NewEngine(), roster)
	_, err := svc.Create(context.Background(), "c1", "i1", Form{MarketValue: 500000})
	require.Error(t, err)
	assert.True(t, called)
	assert.ErrorIs(t, err, errUnknown)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
	assert.False(t, isForeignKeyViolation(nil))
}
