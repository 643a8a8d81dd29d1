package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/postguard/internal/proto"
	"github.com/dmitrijs2005/postguard/internal/server/models"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	acc, err := s.services.Accounts.Register(ctx, req.Email, req.Password, req.ConfirmPassword, req.Age)
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "email", req.Email, "error", err)
		return nil, toStatus(err)
	}

	return &pb.RegisterResponse{AccountID: acc.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	res, err := s.services.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.LoginResponse{AccessToken: res.AccessToken, Session: sessionView(res.Session)}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	id, err := sessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Sessions.Logout(ctx, id); err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
		return nil, toStatus(err)
	}

	return &pb.LogoutResponse{}, nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.RefreshResponse, error) {
	id, err := sessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.services.Sessions.Refresh(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.RefreshResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Submit(ctx context.Context, req *pb.SubmitRequest) (*pb.SubmitResponse, error) {
	id, err := sessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Moderation.Submit(ctx, id, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}

	out := &pb.SubmitResponse{
		Outcome:      string(res.Outcome),
		Signal:       string(res.Signal),
		Sentiment:    string(res.Classification.Sentiment),
		Relevance:    string(res.Classification.Relevance),
		LockoutUntil: res.LockoutUntil,
		Session:      sessionView(res.Session),
	}
	if res.Post != nil {
		p := postView(*res.Post)
		out.Post = &p
	}

	return out, nil
}

func (s *GRPCServer) Profile(ctx context.Context, req *pb.ProfileRequest) (*pb.ProfileResponse, error) {
	id, err := sessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Moderation.Profile(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.ProfileResponse{
		Session:       sessionView(p.Session),
		PositiveBadge: p.Badges.Positive,
		NegativeBadge: p.Badges.Negative,
	}, nil
}

func (s *GRPCServer) Distribution(ctx context.Context, req *pb.DistributionRequest) (*pb.DistributionResponse, error) {
	id, err := sessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	dist, err := s.services.Moderation.Distribution(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	counts := make(map[string]int, len(dist))
	for k, v := range dist {
		counts[string(k)] = v
	}

	return &pb.DistributionResponse{Counts: counts}, nil
}

func (s *GRPCServer) Export(ctx context.Context, req *pb.ExportRequest) (*pb.ExportResponse, error) {
	id, err := sessionIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.services.Export.Export(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "export failed", "error", err)
		return nil, toStatus(err)
	}

	return &pb.ExportResponse{Key: res.Key, URL: res.URL, ExpiresAt: res.ExpiresAt}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func sessionView(s *models.Session) pb.SessionView {
	v := pb.SessionView{
		Email:         s.Email,
		Age:           s.Age,
		PositiveCount: s.PositiveCount,
		NegativeCount: s.NegativeCount,
		LockoutUntil:  s.LockoutUntil,
	}
	for _, p := range s.History {
		v.History = append(v.History, postView(p))
	}
	return v
}

func postView(p models.Post) pb.PostView {
	return pb.PostView{
		ID:        p.ID,
		Text:      p.Text,
		PostedAt:  p.PostedAt,
		Sentiment: string(p.Sentiment),
		Relevance: string(p.Relevance),
	}
}
