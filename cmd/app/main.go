package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"forum-service/configs"
	"forum-service/internal/announcement"
	"forum-service/internal/comment"
	"forum-service/internal/idem"
	"forum-service/internal/kafka"
	"forum-service/internal/media"
	"forum-service/internal/membership"
	"forum-service/internal/migrate"
	"forum-service/internal/payment"
	"forum-service/internal/post"
	"forum-service/internal/ratelimit"
	"forum-service/internal/shared/db"
	"forum-service/internal/shared/httpx"
	"forum-service/internal/tag"
	"forum-service/internal/user"
	"forum-service/internal/vote"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("forum-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()

	store := db.Open(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	var events kafka.Writer = kafka.Nop{}
	if os.Getenv("KAFKA_DISABLED") != "true" {
		events = kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer events.Close()

	mediaStore, err := media.New(cfg)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}
	if err := mediaStore.EnsureBucket(ctx); err != nil {
		log.Printf("ensure bucket %s: %v", cfg.MinioBucket, err)
	}

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	memberRepo := membership.NewRepository(store)

	userRepo := user.NewRepository(store)
	userSvc := user.NewService(userRepo, memberRepo)
	uh := user.NewHandler(userSvc)

	postRepo := post.NewRepository(store)
	gate := membership.NewGate(memberRepo, postRepo, cfg.FreePostLimit)
	postSvc := post.NewService(postRepo, gate, events, mediaStore, vote.NewCountCache(rdb))
	ph := post.NewHandler(postSvc)

	voteRepo := vote.NewRepository(store, rdb)
	voteSvc := vote.NewService(voteRepo)
	vh := vote.NewHandler(voteSvc)

	commentRepo := comment.NewRepository(store)
	commentSvc := comment.NewService(commentRepo, postRepo)
	ch := comment.NewHandler(commentSvc)

	th := tag.NewHandler(tag.NewRepository(store))
	ah := announcement.NewHandler(announcement.NewRepository(store))

	payRepo := payment.NewRepository(store)
	payClient := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	paySvc := payment.NewService(payRepo, payClient, events, idem.New(rdb))
	pyh := payment.NewHandler(paySvc)

	limiter := ratelimit.New(rdb)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	mux.Handle("POST /auth/register", httpx.Wrap(uh.Register))
	mux.Handle("POST /auth/login", httpx.Wrap(uh.Login))

	mux.Handle("GET /posts", httpx.Wrap(ph.List))
	mux.Handle("GET /posts/{post_id}", httpx.Wrap(ph.GetByID))
	mux.Handle("GET /posts/{post_id}/votes", httpx.Wrap(vh.Get))
	mux.Handle("GET /posts/{post_id}/comments", httpx.Wrap(ch.ListByPost))
	mux.Handle("GET /tags", httpx.Wrap(th.List))
	mux.Handle("GET /announcements", httpx.Wrap(ah.List))
	mux.Handle("GET /users/{email}", httpx.Wrap(uh.GetByEmail))

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}
	admin := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(httpx.AdminMiddleware(h)))
	}

	protect("GET /me/profile", httpx.Wrap(uh.MyProfile))

	protect("POST /posts", httpx.Wrap(ph.Create))
	protect("POST /posts/upload", httpx.Wrap(ph.UploadAndCreate))
	protect("PUT /posts/{post_id}", httpx.Wrap(ph.Update))
	protect("DELETE /posts/{post_id}", httpx.Wrap(ph.Delete))

	protect("POST /posts/{post_id}/vote",
		limiter.LimitHTTP(30, time.Minute, httpx.Wrap(vh.Cast)))

	protect("POST /posts/{post_id}/comments", httpx.Wrap(ch.Create))
	protect("DELETE /comments/{comment_id}", httpx.Wrap(ch.Delete))

	admin("POST /tags", httpx.Wrap(th.Create))
	admin("POST /announcements", httpx.Wrap(ah.Create))
	admin("PUT /announcements/{id}", httpx.Wrap(ah.Update))
	admin("DELETE /announcements/{id}", httpx.Wrap(ah.Delete))

	protect("POST /api/payments/intent", httpx.Wrap(pyh.CreateIntent))
	protect("POST /api/payments", httpx.Wrap(pyh.Record))
	protect("GET /api/payments", httpx.Wrap(pyh.History))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("forum-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
