package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	appai "github.com/bryanwahyu/passwise/internal/application/ai"
	domai "github.com/bryanwahyu/passwise/internal/domain/ai"
	"github.com/bryanwahyu/passwise/internal/domain/strength"
)

type stubClient struct {
	reply string
	err   error
	user  string
}

func (s *stubClient) Complete(_ context.Context, _, user string) (string, error) {
	s.user = user
	return s.reply, s.err
}

func TestReasonParsesCompletion(t *testing.T) {
	g := NewWithT(t)
	client := &stubClient{reply: `{"reasoning":"Short and predictable."}`}
	svc := appai.NewService(client)

	got, err := svc.Reason(context.Background(), strength.ReasonInput{Length: 6, Score: 20})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal("Short and predictable."))
	g.Expect(strings.Contains(client.user, `"length":6`)).To(BeTrue())
}

func TestReasonPropagatesClientErrors(t *testing.T) {
	g := NewWithT(t)
	svc := appai.NewService(&stubClient{err: domai.ErrQuotaExceeded})

	_, err := svc.Reason(context.Background(), strength.ReasonInput{})
	g.Expect(errors.Is(err, domai.ErrQuotaExceeded)).To(BeTrue())
}

func TestReasonRejectsMalformedCompletion(t *testing.T) {
	g := NewWithT(t)
	svc := appai.NewService(&stubClient{reply: "plain prose"})

	_, err := svc.Reason(context.Background(), strength.ReasonInput{})
	g.Expect(err).To(HaveOccurred())
}
