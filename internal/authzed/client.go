// Package authzed wraps the SpiceDB/AuthZed v1 permissions API with the
// small relation-store surface the projector needs: single and bulk
// relationship writes, filtered deletes, and filtered reads.
package authzed

import (
	"context"
	"errors"
	"io"
	"strings"

	v1 "github.com/authzed/authzed-go/proto/authzed/api/v1"
	"github.com/authzed/grpcutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Store is the relation-store contract consumed by the projection
// repositories. *Client implements it; tests substitute an in-memory store.
type Store interface {
	CreateRelationship(ctx context.Context, rel *v1.Relationship) error
	TouchRelationship(ctx context.Context, rel *v1.Relationship) error
	DeleteRelationship(ctx context.Context, rel *v1.Relationship) error
	WriteRelationships(ctx context.Context, updates []*v1.RelationshipUpdate) error
	FilteredDelete(ctx context.Context, filter *v1.RelationshipFilter) error
	ReadRelationships(ctx context.Context, filter *v1.RelationshipFilter) ([]*v1.Relationship, error)
}

// Client is a relation-store client over a shared gRPC connection. It is
// safe for concurrent use; grpc-go serializes frames internally. The client
// performs no retries; redelivery is the caller's concern.
type Client struct {
	conn        *grpc.ClientConn
	permissions v1.PermissionsServiceClient
}

var _ Store = (*Client)(nil)

// Connect opens a connection to the relation store. The endpoint may carry
// an http:// or https:// prefix; https selects TLS with system certificates,
// anything else is plaintext. A non-empty token is attached to every request
// as "authorization: Bearer <token>".
func Connect(endpoint, token string) (*Client, error) {
	target := endpoint
	tls := false
	switch {
	case strings.HasPrefix(target, "https://"):
		tls = true
		target = strings.TrimPrefix(target, "https://")
	case strings.HasPrefix(target, "http://"):
		target = strings.TrimPrefix(target, "http://")
	}

	var opts []grpc.DialOption
	if tls {
		creds, err := grpcutil.WithSystemCerts(grpcutil.VerifyCA)
		if err != nil {
			return nil, &OpError{Op: "connect", Err: err}
		}
		opts = append(opts, creds)
		if token != "" {
			opts = append(opts, grpcutil.WithBearerToken(token))
		}
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if token != "" {
			opts = append(opts, grpcutil.WithInsecureBearerToken(token))
		}
	}

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, &OpError{Op: "connect", Err: err}
	}

	return &Client{
		conn:        conn,
		permissions: v1.NewPermissionsServiceClient(conn),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// CreateRelationship writes a single relationship with the CREATE operation.
// The store rejects the write if the tuple already exists.
func (c *Client) CreateRelationship(ctx context.Context, rel *v1.Relationship) error {
	return c.WriteRelationships(ctx, []*v1.RelationshipUpdate{Create(rel)})
}

// TouchRelationship writes a single relationship with the TOUCH operation,
// succeeding whether or not the tuple already exists.
func (c *Client) TouchRelationship(ctx context.Context, rel *v1.Relationship) error {
	return c.WriteRelationships(ctx, []*v1.RelationshipUpdate{Touch(rel)})
}

// DeleteRelationship removes a single relationship by exact tuple. Deleting
// a tuple that does not exist is not an error.
func (c *Client) DeleteRelationship(ctx context.Context, rel *v1.Relationship) error {
	err := c.write(ctx, []*v1.RelationshipUpdate{Delete(rel)})
	if err != nil {
		return &OpError{Op: "delete relationship", Err: err}
	}
	return nil
}

// WriteRelationships applies a batch of updates atomically.
func (c *Client) WriteRelationships(ctx context.Context, updates []*v1.RelationshipUpdate) error {
	if err := c.write(ctx, updates); err != nil {
		return &OpError{Op: "write relationships", Err: err}
	}
	return nil
}

func (c *Client) write(ctx context.Context, updates []*v1.RelationshipUpdate) error {
	_, err := c.permissions.WriteRelationships(ctx, &v1.WriteRelationshipsRequest{
		Updates: updates,
	})
	return err
}

// FilteredDelete removes every tuple matching the filter. A filter matching
// nothing is not an error.
func (c *Client) FilteredDelete(ctx context.Context, filter *v1.RelationshipFilter) error {
	_, err := c.permissions.DeleteRelationships(ctx, &v1.DeleteRelationshipsRequest{
		RelationshipFilter: filter,
	})
	if err != nil {
		return &OpError{Op: "delete relationships", Err: err}
	}
	return nil
}

// ReadRelationships returns every tuple matching the filter. The server
// streams results; the full set is collected before returning.
func (c *Client) ReadRelationships(ctx context.Context, filter *v1.RelationshipFilter) ([]*v1.Relationship, error) {
	stream, err := c.permissions.ReadRelationships(ctx, &v1.ReadRelationshipsRequest{
		RelationshipFilter: filter,
	})
	if err != nil {
		return nil, &OpError{Op: "read relationships", Err: err}
	}

	var rels []*v1.Relationship
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return rels, nil
		}
		if err != nil {
			return nil, &OpError{Op: "read relationships", Err: err}
		}
		rels = append(rels, resp.Relationship)
	}
}
