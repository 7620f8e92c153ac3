package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseAppliesDefaults(t *testing.T) {
	g := NewWithT(t)
	cfg, err := Parse([]byte("server:\n  port: 9090\n"))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(cfg.Server.Port).To(Equal(9090))
	g.Expect(cfg.Generator.Mode).To(Equal("enforce"))
	g.Expect(cfg.Generator.MaxAttempts).To(Equal(10))
	g.Expect(cfg.Breach.Backend).To(Equal("memory"))
	g.Expect(cfg.Database.Driver).To(Equal("none"))
	g.Expect(cfg.Log.Level).To(Equal("info"))
	g.Expect(cfg.CORS.AllowedOrigins).To(Equal([]string{"*"}))
}

func TestParseEnvOverridesSecrets(t *testing.T) {
	g := NewWithT(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("DATABASE_PASSWORD", "from-env")

	cfg, err := Parse([]byte(`
openai:
  enabled: true
  apiKey: sk-file
database:
  driver: postgres
  host: db
  port: 5432
  user: pw
  password: from-file
  name: passwise
`))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.OpenAI.APIKey).To(Equal("sk-env"))
	g.Expect(cfg.Database.Password).To(Equal("from-env"))

	dsn, err := cfg.DSN()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dsn).To(Equal("postgres://pw:from-env@db:5432/passwise?sslmode=disable"))
}

func TestValidateAggregatesProblems(t *testing.T) {
	g := NewWithT(t)
	_, err := Parse([]byte(`
generator:
  mode: lenient
breach:
  backend: sql
database:
  driver: oracle
auth:
  enabled: true
`))
	g.Expect(err).To(HaveOccurred())
	msg := err.Error()
	for _, want := range []string{"generator.mode", "database.driver", "auth.enabled"} {
		g.Expect(msg).To(ContainSubstring(want))
	}
	g.Expect(strings.Count(msg, "* ")).To(Equal(3))
}

func TestLoadMySQLDSN(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	g.Expect(os.WriteFile(path, []byte(`
database:
  driver: mysql
  host: 127.0.0.1
  port: 3306
  user: root
  password: secret
  name: passwise
`), 0o600)).To(Succeed())

	cfg, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.MySQLDSN()).To(Equal("root:secret@tcp(127.0.0.1:3306)/passwise?parseTime=true&charset=utf8mb4&loc=UTC"))
}
