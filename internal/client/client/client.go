package client

import (
	"context"

	pb "github.com/dmitrijs2005/postguard/internal/proto"
)

type Client interface {
	Close() error
	LoggedIn() bool
	Register(ctx context.Context, email, password, confirm string, age int) error
	Login(ctx context.Context, email, password string) (*pb.SessionView, error)
	Logout(ctx context.Context) error
	Submit(ctx context.Context, text string) (*pb.SubmitResponse, error)
	Profile(ctx context.Context) (*pb.ProfileResponse, error)
	Distribution(ctx context.Context) (map[string]int, error)
	Export(ctx context.Context) (*pb.ExportResponse, error)
	Ping(ctx context.Context) error
}
