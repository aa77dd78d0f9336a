package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/content"
	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/exam"
	pginfra "ea-coach-service/internal/infra/postgres"
	infraredis "ea-coach-service/internal/infra/redis"
	pgmigrations "ea-coach-service/internal/infra/postgres/migrations"
)

func TestExamEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := migrateDB(t, ctx, pgURL)
	defer db.Close()

	pool, err := pgxpool.Connect(ctx, pgURL)
	require.NoError(t, err, "connect pg")
	defer pool.Close()

	loader := pginfra.NewFormLoader(pool)
	require.NoError(t, loader.SaveForm(ctx, sampleForm()))

	forms, err := loader.ListForms(ctx)
	require.NoError(t, err)
	assert.Len(t, forms, len(content.Forms())+1, "seeded forms plus the sample")

	redisClient, err := redisClientFromURL(redisURL)
	require.NoError(t, err, "redis client")
	defer redisClient.Close()

	formRepo := infraredis.NewFormRepository(redisClient, loader, 5*time.Minute, nil)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	results := pginfra.NewResultStore(db)
	events := &event.Recorder{}
	service := app.NewExamService(sessionStore, formRepo, results, app.ExamServiceConfig{Publisher: events})

	snap, err := service.Start(ctx, "integration-form")
	require.NoError(t, err)
	id := snap.SessionID

	n, err := redisClient.Exists(ctx, "exam:form:integration-form", "exam:session:"+id).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "form cached and session marked live")

	for _, cmd := range []app.Command{
		{Type: app.CmdSelectAnswer, Question: 0, Option: 1},
		{Type: app.CmdSelectAnswer, Question: 1, Option: 0},
		{Type: app.CmdRequestEnd},
		{Type: app.CmdConfirmEnd},
	} {
		snap, err = service.Apply(ctx, id, cmd)
		require.NoError(t, err, "apply %s", cmd.Type)
	}
	require.NotNil(t, snap.Results)
	assert.Equal(t, exam.ScaledMax, snap.Results.ScaledScore)
	assert.True(t, snap.Results.Passed)

	records, err := results.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].SessionID)
	assert.Equal(t, 2, records[0].Results.RawScore)
	assert.Len(t, events.OfType(event.TypeExamEnded), 1)

	_, err = loader.LoadForm(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrFormNotFound)
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "coach", "POSTGRES_PASSWORD": "coachpass", "POSTGRES_DB": "coachdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		require.NoError(t, err, "start postgres")
	}
	host, err := container.Host(ctx)
	require.NoError(t, err, "host")
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err, "port")
	dsn := fmt.Sprintf("postgres://coach:coachpass@%s:%s/coachdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		require.NoError(t, err, "start redis")
	}
	host, err := container.Host(ctx)
	require.NoError(t, err, "redis host")
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err, "redis port")
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	require.NoError(t, migrator.Init(ctx), "migrator init")
	_, err := migrator.Migrate(ctx)
	require.NoError(t, err, "migrate")
	return db
}

func sampleForm() domain.ExamForm {
	one, zero := 1, 0
	return domain.ExamForm{
		ID:              "integration-form",
		Part:            1,
		Title:           "Integration",
		DurationSeconds: 600,
		Questions: []domain.Question{
			{ID: "q1", Prompt: "Filing status?", Options: []string{"a", "b", "c"}, CorrectIndex: &one, Domain: "Filing", Topic: "Filing Status"},
			{ID: "q2", Prompt: "Due diligence?", Options: []string{"a", "b"}, CorrectIndex: &zero, Domain: "Ethics", Topic: "Due Diligence"},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
