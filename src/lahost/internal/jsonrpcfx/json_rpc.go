// Package jsonrpcfx accepts editor front-end connections over TCP and routes
// their JSON-RPC traffic to a registered connection manager.
package jsonrpcfx

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/internal/serverinfo"
)

const (
	_configKeyAddress = "jsonrpc.address"
	_outputKey        = "editorAddress"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// JSONRPCModule manages the inbound JSON-RPC listener.
type JSONRPCModule interface {
	ServeStream(ctx context.Context, conn jsonrpc2.Conn) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
}

// Router handles the requests arriving on one connection.
type Router interface {
	HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error
	UUID() uuid.UUID
}

// ConnectionManager tracks each active connection and supplies its Router.
type ConnectionManager interface {
	NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type module struct {
	address string

	connectionMgr ConnectionManager
	ln            *net.TCPListener
	logger        *zap.SugaredLogger
	infoFile      serverinfo.InfoFile
}

// Params define values to be used by the JSON-RPC handler.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	InfoFile  serverinfo.InfoFile
}

// New creates a new server to handle JSON-RPC requests on the configured
// address.
func New(p Params) (JSONRPCModule, error) {
	m := module{
		logger:   p.Logger,
		infoFile: p.InfoFile,
	}

	if err := p.Config.Get(_configKeyAddress).Populate(&m.address); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}
	if m.address == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKeyAddress)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.onStart,
		OnStop:  m.onStop,
	})

	return &m, nil
}

func (m *module) onStart(ctx context.Context) error {
	addr, err := net.ResolveTCPAddr("tcp", m.address)
	if err != nil {
		return err
	}
	m.ln, err = net.ListenTCP("tcp", addr)
	if err != nil {
		return err
	}

	// The front-end discovers the port through the info file, so the
	// resolved address is published rather than the configured one.
	if err := m.infoFile.UpdateField(_outputKey, m.ln.Addr().String()); err != nil {
		m.ln.Close()
		return err
	}

	m.logger.Infow("started JSON-RPC inbound", zap.String("address", m.ln.Addr().String()))
	go m.serve()
	return nil
}

func (m *module) onStop(ctx context.Context) error {
	if m.ln == nil {
		return nil
	}
	return m.ln.Close()
}

func (m *module) serve() {
	err := jsonrpc2.Serve(context.Background(), m.ln, m, 0)
	if err != nil && !errors.Is(err, net.ErrClosed) {
		m.logger.Errorw("JSON-RPC inbound stopped", zap.Error(err))
	}
}

// ServeStream is called for each accepted connection. It blocks until the
// connection closes, then releases it from the connection manager.
func (m *module) ServeStream(ctx context.Context, conn jsonrpc2.Conn) error {
	if m.connectionMgr == nil {
		m.logger.Errorf("cannot serve connection, no connection manager set")
		return errors.New("cannot serve connection, no connection manager set")
	}

	handler, err := m.connectionMgr.NewConnection(ctx, &conn)
	if err != nil {
		return err
	}
	m.logger.Infow("editor connected", zap.Stringer("uuid", handler.UUID()))
	conn.Go(ctx, handler.HandleReq)

	<-conn.Done()

	m.connectionMgr.RemoveConnection(ctx, handler.UUID())
	m.logger.Infow("editor disconnected", zap.Stringer("uuid", handler.UUID()))

	return conn.Err()
}

// RegisterConnectionManager sets the connection manager. Registration happens
// once, during handler wiring.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}
