package jsonrpcfx

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/internal/serverinfo/serverinfomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRouter struct {
	id uuid.UUID
}

func (r *fakeRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, "pong", nil)
}

func (r *fakeRouter) UUID() uuid.UUID { return r.id }

type fakeConnMgr struct {
	router  *fakeRouter
	removed chan uuid.UUID
}

func (m *fakeConnMgr) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (Router, error) {
	return m.router, nil
}

func (m *fakeConnMgr) RemoveConnection(ctx context.Context, id uuid.UUID) {
	m.removed <- id
}

func newTestModule(t *testing.T) (JSONRPCModule, *fxtest.Lifecycle, chan string) {
	t.Helper()
	provider, err := config.NewStaticProvider(map[string]interface{}{
		"jsonrpc": map[string]interface{}{
			"address": "127.0.0.1:0",
		},
	})
	require.NoError(t, err)

	published := make(chan string, 1)
	ctrl := gomock.NewController(t)
	infoFile := serverinfomock.NewMockInfoFile(ctrl)
	infoFile.EXPECT().UpdateField(_outputKey, gomock.Any()).DoAndReturn(
		func(_ string, value string) error {
			published <- value
			return nil
		}).AnyTimes()

	lc := fxtest.NewLifecycle(t)
	m, err := New(Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
		InfoFile:  infoFile,
	})
	require.NoError(t, err)
	return m, lc, published
}

func TestNewMissingAddress(t *testing.T) {
	provider, err := config.NewStaticProvider(map[string]interface{}{})
	require.NoError(t, err)

	_, err = New(Params{
		Config:    provider,
		Lifecycle: fxtest.NewLifecycle(t),
		Logger:    zap.NewNop().Sugar(),
		InfoFile:  serverinfomock.NewMockInfoFile(gomock.NewController(t)),
	})
	assert.Error(t, err)
}

func TestRegisterConnectionManagerTwice(t *testing.T) {
	m, _, _ := newTestModule(t)
	require.NoError(t, m.RegisterConnectionManager(&fakeConnMgr{}))
	assert.Error(t, m.RegisterConnectionManager(&fakeConnMgr{}))
}

func TestServeStreamWithoutConnectionManager(t *testing.T) {
	m, _, _ := newTestModule(t)

	client, server := net.Pipe()
	defer client.Close()
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(server))
	defer conn.Close()

	assert.Error(t, m.ServeStream(context.Background(), conn))
}

func TestRoundTrip(t *testing.T) {
	m, lc, published := newTestModule(t)

	mgr := &fakeConnMgr{
		router:  &fakeRouter{id: uuid.Must(uuid.NewV4())},
		removed: make(chan uuid.UUID, 1),
	}
	require.NoError(t, m.RegisterConnectionManager(mgr))

	lc.RequireStart()
	defer lc.RequireStop()

	var address string
	select {
	case address = <-published:
	case <-time.After(5 * time.Second):
		t.Fatal("listener address never published")
	}

	netConn, err := net.Dial("tcp", address)
	require.NoError(t, err)

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(netConn))
	conn.Go(context.Background(), jsonrpc2.MethodNotFoundHandler)

	var result string
	_, err = conn.Call(context.Background(), "ping", nil, &result)
	require.NoError(t, err)
	assert.Equal(t, "pong", result)

	conn.Close()

	select {
	case id := <-mgr.removed:
		assert.Equal(t, mgr.router.id, id)
	case <-time.After(5 * time.Second):
		t.Fatal("connection was never released")
	}
}
