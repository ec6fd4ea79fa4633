package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

func bulkUsers() *stubUserRepo {
	return &stubUserRepo{users: []*domain.User{
		{ID: "r1", Username: "alice", Role: domain.RoleRecruiter},
		{ID: "r2", Username: "carol", Role: domain.RoleRecruiter},
		{ID: "c1", Username: "bob", Role: domain.RoleCandidate, AssignedRecruiterID: "r1", Status: domain.StatusSelected},
		{ID: "c2", Username: "dave", Role: domain.RoleCandidate, AssignedRecruiterID: "r1", Status: domain.StatusRejected},
		{ID: "c3", Username: "erin", Role: domain.RoleCandidate, AssignedRecruiterID: "r1", Status: domain.StatusSelected},
		{ID: "c4", Username: "fay", Role: domain.RoleCandidate, AssignedRecruiterID: "r2", Status: domain.StatusSelected},
	}}
}

func newBulk(users *stubUserRepo, msgs *stubMessageRepo, pub *recordingPublisher) *BulkService {
	dir := newDirectory(users, pub)
	conv := newConversations(users, msgs, pub)
	return NewBulkService(dir, conv, zerolog.Nop())
}

func TestBulk_SendToStatus(t *testing.T) {
	msgs := newStubMessageRepo()
	svc := newBulk(bulkUsers(), msgs, &recordingPublisher{})

	res, err := svc.SendToStatus(context.Background(), "r1", domain.StatusSelected, "Congrats")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Targeted != 2 || len(res.Sent) != 2 {
		t.Fatalf("expected 2 targeted and sent, got %d/%d", res.Targeted, len(res.Sent))
	}
	if res.Sent[0].ReceiverID != "c1" || res.Sent[1].ReceiverID != "c3" {
		t.Fatalf("unexpected receivers %s, %s", res.Sent[0].ReceiverID, res.Sent[1].ReceiverID)
	}
	if len(msgs.byConv[domain.ConversationID("r1", "c2")]) != 0 {
		t.Fatal("rejected candidate must not be messaged")
	}
	if len(msgs.byConv[domain.ConversationID("r1", "c4")]) != 0 {
		t.Fatal("another recruiter's candidate must not be messaged")
	}
}

func TestBulk_SendToStatus_NoMatches(t *testing.T) {
	svc := newBulk(bulkUsers(), newStubMessageRepo(), &recordingPublisher{})
	res, err := svc.SendToStatus(context.Background(), "r1", domain.StatusInterviewing, "x")
	if err != nil || res.Targeted != 0 || len(res.Sent) != 0 {
		t.Fatalf("expected empty result, got %+v, %v", res, err)
	}
}

func TestBulk_SendToStatus_PartialFailure(t *testing.T) {
	msgs := newStubMessageRepo()
	msgs.failAfter = 1
	svc := newBulk(bulkUsers(), msgs, &recordingPublisher{})

	res, err := svc.SendToStatus(context.Background(), "r1", domain.StatusSelected, "Congrats")
	if !errors.Is(err, domain.ErrBulkIncomplete) {
		t.Fatalf("expected ErrBulkIncomplete, got %v", err)
	}
	if res.Targeted != 2 || len(res.Sent) != 1 {
		t.Fatalf("expected 1 of 2 sent, got %d of %d", len(res.Sent), res.Targeted)
	}
	if len(msgs.byConv[domain.ConversationID("r1", "c1")]) != 1 {
		t.Fatal("first send must stay persisted")
	}
}

func TestBulk_ApplyStatusToMany(t *testing.T) {
	users := bulkUsers()
	pub := &recordingPublisher{}
	svc := newBulk(users, newStubMessageRepo(), pub)

	n := svc.ApplyStatusToMany(context.Background(), "r1", []string{"c1", "c4", "ghost", "c2"}, domain.StatusInterviewing)
	if n != 2 {
		t.Fatalf("expected 2 updated, got %d", n)
	}
	got, _ := users.FindByID(context.Background(), "c4")
	if got.Status != domain.StatusSelected {
		t.Fatal("foreign candidate must keep its status")
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected 2 status events, got %d", len(pub.events))
	}
}
