package faqstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/yanqian/faq-widget/internal/domain/faq"
)

func TestValkeyStoreRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	store := NewValkeyStore(client, "widget")
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("ZINCRBY", "widget:hits", "1", "hours")).
		Return(mock.Result(mock.ValkeyString("1")))
	client.EXPECT().
		Do(ctx, mock.Match("ZINCRBY", "widget:misses", "1", "banana")).
		Return(mock.Result(mock.ValkeyString("1")))

	require.NoError(t, store.Record(ctx, "hours", faq.OutcomeFAQ))
	require.NoError(t, store.Record(ctx, "banana", faq.OutcomeNotFound))
	require.NoError(t, store.Record(ctx, "", faq.OutcomeFAQ))
}

func TestValkeyStoreTopRESP2(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	store := NewValkeyStore(client, "faq")
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:hits", "0", "2", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyString("hours"), mock.ValkeyString("3"),
			mock.ValkeyString("pricing"), mock.ValkeyString("1"),
		)))
	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:misses", "0", "2", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyString("banana"), mock.ValkeyString("2"),
		)))

	top, err := store.Top(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, []faq.QueryStat{
		{Query: "hours", Outcome: faq.OutcomeFAQ, Count: 3},
		{Query: "banana", Outcome: faq.OutcomeNotFound, Count: 2},
		{Query: "pricing", Outcome: faq.OutcomeFAQ, Count: 1},
	}, top)
}

func TestValkeyStoreTopRESP3(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	store := NewValkeyStore(client, "faq")
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:hits", "0", "0", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyArray(mock.ValkeyString("hours"), mock.ValkeyFloat64(4)),
		)))
	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:misses", "0", "0", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyArray(mock.ValkeyString("banana"), mock.ValkeyFloat64(5)),
		)))

	top, err := store.Top(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []faq.QueryStat{
		{Query: "banana", Outcome: faq.OutcomeNotFound, Count: 5},
	}, top)
}

func TestValkeyStoreTopMissingKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	store := NewValkeyStore(client, "faq")
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:hits", "0", "9", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyNil()))
	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:misses", "0", "9", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyNil()))

	top, err := store.Top(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestValkeyStoreTopPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	store := NewValkeyStore(client, "faq")
	ctx := context.Background()
	boom := errors.New("connection reset")

	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "faq:hits", "0", "9", "WITHSCORES")).
		Return(mock.ErrorResult(boom))

	_, err := store.Top(ctx, 10)
	require.ErrorIs(t, err, boom)
}
