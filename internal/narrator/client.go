// Package narrator produces planner-facing explanations of computed
// forecasts, either through the external narration gRPC service or a
// deterministic template fallback.
package narrator

import (
	"context"
	"fmt"

	pb "github.com/planflow/demand-planner/gen/narrator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// #region interface

// Narrator generates free text from instructions and a structured payload.
type Narrator interface {
	Generate(ctx context.Context, systemInstructions, userPayload string) (string, error)
}

// #endregion interface

// #region client

// Client wraps the gRPC connection to the narration service.
type Client struct {
	conn   *grpc.ClientConn
	client pb.NarratorServiceClient
}

// NewClient connects to the narration gRPC server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewNarratorServiceClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service stub.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.NarratorServiceClient) *Client {
	return &Client{client: svc}
}

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Generate sends the narration request to the service.
func (c *Client) Generate(ctx context.Context, systemInstructions, userPayload string) (string, error) {
	resp, err := c.client.Generate(ctx, &pb.GenerateRequest{
		SystemInstructions: systemInstructions,
		UserPayload:        userPayload,
	})
	if err != nil {
		return "", fmt.Errorf("generate rpc: %w", err)
	}
	return resp.Text, nil
}

// #endregion client
