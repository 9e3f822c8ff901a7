package faqstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

func newMockStore(t *testing.T) (*ValkeyStore, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	return NewValkeyStore(client, "faq"), client
}

func TestValkeyStorePutWritesExpiryWithValue(t *testing.T) {
	tests := []struct {
		name    string
		ttl     time.Duration
		wantSec string
	}{
		{name: "minutes", ttl: 15 * time.Minute, wantSec: "900"},
		{name: "sub second rounds up", ttl: 300 * time.Millisecond, wantSec: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, client := newMockStore(t)
			answer := faq.CachedAnswer{Question: "How do refunds work?", Answer: "30 days", Source: faq.SourceWeb, CreatedAt: time.Unix(1735689600, 0).UTC()}
			fp := faq.Fingerprint(answer.Question)

			client.EXPECT().Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
				if len(cmd) != 5 || cmd[0] != "SET" || cmd[1] != faq.ResultKey(fp) {
					return false
				}
				var stored faq.CachedAnswer
				if err := json.Unmarshal([]byte(cmd[2]), &stored); err != nil || stored.Question != answer.Question {
					return false
				}
				return cmd[3] == "EX" && cmd[4] == tt.wantSec
			}, "SET result:<fp> <payload> EX "+tt.wantSec)).Return(mock.Result(mock.ValkeyString("OK")))

			require.NoError(t, store.Put(context.Background(), fp, answer, tt.ttl))
		})
	}
}

func TestValkeyStorePutRejectsBadWrites(t *testing.T) {
	// no EXPECT: any command sent to the client fails the test
	store, _ := newMockStore(t)
	answer := faq.CachedAnswer{Question: "How do refunds work?", Answer: "30 days"}
	ctx := context.Background()

	err := store.Put(ctx, faq.Fingerprint("Opening hours?"), answer, time.Minute)
	require.ErrorContains(t, err, "does not match question fingerprint")

	require.Error(t, store.Put(ctx, faq.Fingerprint(answer.Question), answer, 0))
	require.Error(t, store.Put(ctx, faq.Fingerprint(answer.Question), answer, -time.Second))
}

func TestValkeyStoreGet(t *testing.T) {
	ctx := context.Background()
	fp := faq.Fingerprint("How do refunds work?")

	t.Run("hit", func(t *testing.T) {
		store, client := newMockStore(t)
		want := faq.CachedAnswer{
			Question:  "How do refunds work?",
			Answer:    "30 days",
			Source:    faq.SourceWeb,
			Score:     0.12,
			CreatedAt: time.Unix(1735689600, 0).UTC(),
			Version:   faq.SchemaVersion,
		}
		payload, err := json.Marshal(want)
		require.NoError(t, err)
		client.EXPECT().Do(gomock.Any(), mock.Match("GET", faq.ResultKey(fp))).
			Return(mock.Result(mock.ValkeyBlobString(string(payload))))

		got, ok, err := store.Get(ctx, fp)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, want, got)
	})

	t.Run("miss", func(t *testing.T) {
		store, client := newMockStore(t)
		client.EXPECT().Do(gomock.Any(), mock.Match("GET", faq.ResultKey(fp))).
			Return(mock.Result(mock.ValkeyNil()))

		_, ok, err := store.Get(ctx, fp)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("connection error", func(t *testing.T) {
		store, client := newMockStore(t)
		client.EXPECT().Do(gomock.Any(), mock.Match("GET", faq.ResultKey(fp))).
			Return(mock.ErrorResult(errors.New("connection reset by peer")))

		_, ok, err := store.Get(ctx, fp)
		require.ErrorContains(t, err, "connection reset")
		require.False(t, ok)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		store, client := newMockStore(t)
		client.EXPECT().Do(gomock.Any(), mock.Match("GET", faq.ResultKey(fp))).
			Return(mock.Result(mock.ValkeyBlobString("{not json")))

		_, ok, err := store.Get(ctx, fp)
		require.ErrorContains(t, err, "decode cached answer")
		require.False(t, ok)
	})
}

func TestValkeyStoreTopQueries(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()

	client.EXPECT().Do(gomock.Any(), mock.Match("ZREVRANGE", "faq:trending", "0", "1", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyBlobString("refund policy"), mock.ValkeyBlobString("4"),
			mock.ValkeyBlobString("opening hours"), mock.ValkeyBlobString("2"),
		)))
	client.EXPECT().Do(gomock.Any(), mock.Match("GET", "faq:display:refund policy")).
		Return(mock.Result(mock.ValkeyBlobString("Refund policy?")))
	client.EXPECT().Do(gomock.Any(), mock.Match("GET", "faq:display:opening hours")).
		Return(mock.Result(mock.ValkeyNil()))

	got, err := store.TopQueries(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "Refund policy?", Count: 4},
		{Query: "opening hours", Count: 2},
	}, got)
}
