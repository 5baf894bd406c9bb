package lahostdaemon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"

	"github.com/polder-ide/lahost/src/lahost/controller/commands/commandsmock"
	"github.com/polder-ide/lahost/src/lahost/controller/lifecycle/lifecyclemock"
)

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	r := jsonRPCRouter{version: "0.3.0"}

	var gotResult interface{}
	replier := func(ctx context.Context, result interface{}, err error) error {
		gotResult = result
		return err
	}

	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), protocol.MethodInitialize, protocol.InitializeParams{})
	err := r.HandleReq(ctx, replier, req)
	require.NoError(t, err)

	result, ok := gotResult.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "lahost", result.ServerInfo.Name)
	assert.Equal(t, "0.3.0", result.ServerInfo.Version)
}

func TestHandshakeAcknowledgements(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{name: "initialized", method: protocol.MethodInitialized},
		{name: "shutdown", method: protocol.MethodShutdown},
		{name: "exit", method: protocol.MethodExit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r := jsonRPCRouter{}

			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), tt.method, nil)
			err := r.HandleReq(ctx, newMockReplier(), req)
			assert.NoError(t, err)
		})
	}
}

func TestServerControlMethods(t *testing.T) {
	tests := []struct {
		name            string
		method          string
		expect          func(m *lifecyclemock.MockController, err error)
		controllerError error
		wantErr         bool
	}{
		{
			name:   "start success",
			method: MethodStart,
			expect: func(m *lifecyclemock.MockController, err error) {
				m.EXPECT().Start(gomock.Any()).Return(err)
			},
		},
		{
			name:   "start failure",
			method: MethodStart,
			expect: func(m *lifecyclemock.MockController, err error) {
				m.EXPECT().Start(gomock.Any()).Return(err)
			},
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:   "stop success",
			method: MethodStop,
			expect: func(m *lifecyclemock.MockController, err error) {
				m.EXPECT().Stop(gomock.Any()).Return(err)
			},
		},
		{
			name:   "stop failure",
			method: MethodStop,
			expect: func(m *lifecyclemock.MockController, err error) {
				m.EXPECT().Stop(gomock.Any()).Return(err)
			},
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:   "restart success",
			method: MethodRestart,
			expect: func(m *lifecyclemock.MockController, err error) {
				m.EXPECT().Restart(gomock.Any()).Return(err)
			},
		},
		{
			name:   "restart failure",
			method: MethodRestart,
			expect: func(m *lifecyclemock.MockController, err error) {
				m.EXPECT().Restart(gomock.Any()).Return(err)
			},
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			c := lifecyclemock.NewMockController(ctrl)
			tt.expect(c, tt.controllerError)

			r := jsonRPCRouter{lifecycle: c}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), tt.method, nil)
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkspaceDidChange(t *testing.T) {
	tests := []struct {
		name            string
		params          interface{}
		expectCall      bool
		controllerError error
		wantErr         bool
	}{
		{
			name:       "folder workspace",
			params:     map[string]interface{}{"kind": "folder", "folders": []string{"/repo/a"}},
			expectCall: true,
		},
		{
			name:       "empty workspace",
			params:     map[string]interface{}{"kind": "empty"},
			expectCall: true,
		},
		{
			name:    "unknown kind",
			params:  map[string]interface{}{"kind": "bogus"},
			wantErr: true,
		},
		{
			name:            "error from controller",
			params:          map[string]interface{}{"kind": "folder", "folders": []string{"/repo/a"}},
			expectCall:      true,
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			c := lifecyclemock.NewMockController(ctrl)
			if tt.expectCall {
				c.EXPECT().OnWorkspaceChange(gomock.Any(), gomock.Any()).Return(tt.controllerError)
			}

			r := jsonRPCRouter{lifecycle: c}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), MethodWorkspaceDidChange, tt.params)
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecuteCommand(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		params    interface{}
		gateError error
		wantErr   bool
	}{
		{
			name:   "custom method",
			method: MethodExecuteCommand,
			params: protocol.ExecuteCommandParams{Command: "lahost.openLogs"},
		},
		{
			name:   "standard lsp method",
			method: protocol.MethodWorkspaceExecuteCommand,
			params: protocol.ExecuteCommandParams{Command: "lahost.openLogs"},
		},
		{
			name:      "error from gate",
			method:    MethodExecuteCommand,
			params:    protocol.ExecuteCommandParams{Command: "lahost.restartServer"},
			gateError: errors.New("gate error"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()

			params, ok := tt.params.(protocol.ExecuteCommandParams)
			require.True(t, ok)

			g := commandsmock.NewMockGate(ctrl)
			g.EXPECT().Execute(gomock.Any(), params.Command).Return(tt.gateError)

			r := jsonRPCRouter{gate: g}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), tt.method, tt.params)
			err := r.HandleReq(ctx, newMockReplier(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
