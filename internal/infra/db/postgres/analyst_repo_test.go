package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/gomega"

	domain "github.com/bryanwahyu/passwise/internal/domain/analyst"
)

func TestAnalystRepositorySave(t *testing.T) {
	g := NewWithT(t)
	db, mock, err := sqlmock.New()
	g.Expect(err).NotTo(HaveOccurred())
	defer db.Close()

	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs("b-1", "acme", 16, 80, "years", "brute force attack", sqlmock.AnyArg(), false, false, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewAnalystRepository(db).Save(context.Background(), &domain.Analysis{
		ID:           "b-1",
		TenantID:     "acme",
		Length:       16,
		Score:        80,
		TimeToCrack:  "years",
		AttackVector: "brute force attack",
		CreatedAt:    at,
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mock.ExpectationsWereMet()).To(Succeed())
}

func TestAnalystRepositoryPaginate(t *testing.T) {
	g := NewWithT(t)
	db, mock, err := sqlmock.New()
	g.Expect(err).NotTo(HaveOccurred())
	defer db.Close()

	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "length", "score", "time_to_crack", "attack_vector",
		"patterns", "compromised", "improved", "created_at"}).
		AddRow("b-1", "acme", 13, 25, "seconds to minutes", "dictionary attack", "{common_word,year_pattern}", false, true, at)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tenant_id=$1")).
		WithArgs("acme", 10, 0).
		WillReturnRows(rows)

	list, err := NewAnalystRepository(db).Paginate(context.Background(), "acme", 1, 10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(list).To(HaveLen(1))
	g.Expect(list[0].Patterns).To(Equal([]string{"common_word", "year_pattern"}))
	g.Expect(list[0].CreatedAt).To(Equal(at))
	g.Expect(mock.ExpectationsWereMet()).To(Succeed())
}

func TestAnalystRepositoryPaginateOverflowSkipsQuery(t *testing.T) {
	g := NewWithT(t)
	db, mock, err := sqlmock.New()
	g.Expect(err).NotTo(HaveOccurred())
	defer db.Close()

	list, err := NewAnalystRepository(db).Paginate(context.Background(), "acme", 184467440737095517, 100)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(list).To(BeEmpty())
	g.Expect(mock.ExpectationsWereMet()).To(Succeed())
}
