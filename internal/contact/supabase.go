package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseStore inserts messages through Supabase's PostgREST endpoint.
type SupabaseStore struct {
	client  *postgrest.Client
	table   string
	timeout time.Duration
}

// NewSupabaseStore returns a store writing to table at the project URL.
// A zero timeout leaves the deadline to the caller's context.
func NewSupabaseStore(projectURL, anonKey, table string, timeout time.Duration) (*SupabaseStore, error) {
	base, err := url.Parse(strings.TrimRight(projectURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing supabase url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("supabase url %q is not absolute", projectURL)
	}

	client := postgrest.NewClient(base.JoinPath("rest", "v1").String(), "public", map[string]string{
		"apikey":        anonKey,
		"Authorization": "Bearer " + anonKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("creating postgrest client: %w", client.ClientError)
	}
	return &SupabaseStore{client: client, table: table, timeout: timeout}, nil
}

type insertResult struct {
	body []byte
	err  error
}

// Insert writes one row and returns it as stored. The PostgREST client
// has no context support, so the call runs aside and ctx bounds the wait.
func (s *SupabaseStore) Insert(ctx context.Context, m Message) (Record, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan insertResult, 1)
	go func() {
		body, _, err := s.client.From(s.table).
			Insert([]Message{m}, false, "", "representation", "").
			Execute()
		done <- insertResult{body: body, err: err}
	}()

	var res insertResult
	select {
	case res = <-done:
	case <-ctx.Done():
		return Record{}, fmt.Errorf("%w: %v", ErrInsertFailed, ctx.Err())
	}
	if res.err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInsertFailed, res.err)
	}

	var rows []Record
	if err := json.Unmarshal(res.body, &rows); err != nil || len(rows) == 0 {
		// Row was written; echo the submission back.
		return Record{Name: m.Name, Email: m.Email, Message: m.Message}, nil
	}
	return rows[0], nil
}
