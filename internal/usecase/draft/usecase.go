package draft

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/assembler"
	"github.com/validalex/draft-backend/internal/pkg/logger"
	"github.com/validalex/draft-backend/internal/pkg/retry"
)

// DraftUsecase runs the validate, prompt, generate, parse and assemble
// pipeline, synchronously or as a tracked background job.
type DraftUsecase struct {
	validator InputValidator
	prompts   PromptBuilder
	model     ModelClient
	parser    OutputParser
	jobs      JobRepository
	callbacks CallbackSender
	logger    *zap.Logger

	saveRetry *retry.RetryConfig
	now       func() time.Time
	newID     func() string
	wg        sync.WaitGroup
}

// terminalSaveRetry writes a finished job at most twice.
var terminalSaveRetry = retry.RetryConfig{
	Attempts: 2,
	Delay:    200 * time.Millisecond,
	MaxDelay: 200 * time.Millisecond,
	Timeout:  5 * time.Second,
}

func NewUsecase(
	validator InputValidator,
	prompts PromptBuilder,
	model ModelClient,
	parser OutputParser,
	jobs JobRepository,
	callbacks CallbackSender,
	logger *zap.Logger,
) *DraftUsecase {
	return &DraftUsecase{
		validator: validator,
		prompts:   prompts,
		model:     model,
		parser:    parser,
		jobs:      jobs,
		callbacks: callbacks,
		logger:    logger,
		saveRetry: &terminalSaveRetry,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Validate runs only the input validator.
func (uc *DraftUsecase) Validate(req *entity.DraftRequest) entity.ValidationResult {
	return uc.validator.Validate(&req.Data)
}

// Generate produces a draft envelope. Invalid input is not an error: it
// yields an envelope with ok=false, empty sections and the missing fields,
// and the model is never called.
func (uc *DraftUsecase) Generate(ctx context.Context, req *entity.DraftRequest) (*entity.Envelope, error) {
	start := uc.now()

	v := uc.validator.Validate(&req.Data)
	if !v.OK {
		ctxzap.Info(ctx, "draft input incomplete", zap.Int("missing", len(v.Missing)))
		return validationEnvelope(v), nil
	}

	prompt, err := uc.prompts.Build(req)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	out, err := uc.model.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}

	parsed, err := uc.parser.Parse(out.Text, prompt.Meta.TemplateVersion)
	if err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	parsed.Alerts = append(append([]entity.Alert{}, v.Alerts...), parsed.Alerts...)

	env := assembler.Assemble(parsed, req.Data.Provas.Documentos)
	env.Meta["schemaVersion"] = v.Meta["schemaVersion"]
	env.Meta["promptVersion"] = prompt.Meta.PromptVersion
	env.Meta["model"] = out.Model
	env.Meta["elapsedMs"] = out.ElapsedMs
	env.Meta["truncated"] = out.Truncated
	env.Meta["ms"] = uc.now().Sub(start).Milliseconds()

	ctxzap.Info(ctx, "draft generated",
		zap.Bool("has_html", env.HTML != ""),
		zap.Bool("has_sections", env.Sections.HasAnyText()),
		zap.Int("alerts", len(env.Alerts)),
		zap.Any("ms", env.Meta["ms"]),
	)
	return env, nil
}

func validationEnvelope(v entity.ValidationResult) *entity.Envelope {
	meta := map[string]any{"stage": "validate"}
	for k, val := range v.Meta {
		meta[k] = val
	}
	return entity.NewDegradedEnvelope(v.Alerts, v.Missing, meta)
}

// Start records a job and schedules its processing. Invalid input is stored
// directly as a done job carrying the validation envelope.
func (uc *DraftUsecase) Start(ctx context.Context, req *entity.DraftRequest) (*entity.StartDraftResponse, error) {
	if err := checkCallbackURL(req.CallbackURL); err != nil {
		return nil, err
	}

	jobID := uc.newID()
	ctx = logger.WithJobID(ctx, jobID)

	job := entity.NewQueuedJob(jobID, req, uc.now())

	v := uc.validator.Validate(&req.Data)
	if !v.OK {
		if err := job.Transition(entity.JobStatusDone, uc.now()); err != nil {
			return nil, err
		}
		job.Result = validationEnvelope(v)
		job.Payload = nil
		if err := uc.jobs.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("create job: %w", err)
		}
		ctxzap.Info(ctx, "draft job finished at validation", zap.Int("missing", len(v.Missing)))
		uc.notify(ctx, job)
	} else {
		if err := uc.jobs.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("create job: %w", err)
		}
		ctxzap.Info(ctx, "draft job queued")
		uc.dispatch(ctx, jobID)
	}

	return &entity.StartDraftResponse{
		OK:        true,
		JobID:     jobID,
		StatusURL: entity.JobStatusURL(jobID),
	}, nil
}

// checkCallbackURL accepts an empty value or an absolute http(s) URL.
func checkCallbackURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%w: callback_url: %w", entity.ErrInvalidParameter, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: callback_url %q (expected http or https)", entity.ErrInvalidParameter, raw)
	}
	return nil
}

// dispatch runs the job in a goroutine detached from the request context.
func (uc *DraftUsecase) dispatch(ctx context.Context, jobID string) {
	bgCtx := logger.Detach(ctx)

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		if err := uc.RunJob(bgCtx, jobID); err != nil {
			ctxzap.Error(bgCtx, "draft job failed", zap.Error(err))
		}
	}()
}

// RunJob moves a queued job through running to done or error. Once the job
// is loaded it always ends terminal in the store unless the error save
// itself fails twice.
func (uc *DraftUsecase) RunJob(ctx context.Context, jobID string) error {
	start := uc.now()

	job, err := uc.jobs.Get(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}
	if err := job.Transition(entity.JobStatusRunning, uc.now()); err != nil {
		return err
	}
	if err := uc.jobs.Save(ctx, job); err != nil {
		err = fmt.Errorf("save running job: %w", err)
		return errors.Join(err, uc.fail(ctx, job, start, err))
	}

	var env *entity.Envelope
	if job.Payload == nil {
		err = entity.ErrJobPayloadMissing
	} else {
		env, err = uc.Generate(ctx, job.Payload)
	}
	if err != nil {
		return uc.fail(ctx, job, start, err)
	}

	done := *job
	if err := done.Transition(entity.JobStatusDone, uc.now()); err != nil {
		return err
	}
	env.Meta["ms"] = uc.now().Sub(start).Milliseconds()
	done.Result = env
	done.Payload = nil

	if err := uc.saveTerminal(ctx, &done); err != nil {
		err = fmt.Errorf("save finished job: %w", err)
		return errors.Join(err, uc.fail(ctx, job, start, err))
	}
	uc.notify(ctx, &done)
	return nil
}

// fail stores a running job as error with a degraded envelope built from
// cause. It returns only the errors of that write.
func (uc *DraftUsecase) fail(ctx context.Context, job *entity.Job, start time.Time, cause error) error {
	f := Classify(cause)
	ctxzap.Error(ctx, "draft job error",
		zap.Int("status", f.Status),
		zap.String("code", f.Code),
		zap.Error(cause),
	)
	if err := job.Transition(entity.JobStatusError, uc.now()); err != nil {
		return err
	}
	job.Error = &entity.JobError{Message: f.Message, Status: f.Status}
	job.Result = entity.NewDegradedEnvelope(
		[]entity.Alert{{Level: entity.AlertLevelError, Code: entity.AlertDraftFailed, Message: f.Message}},
		nil,
		map[string]any{"stage": "handler", "code": f.Code, "ms": uc.now().Sub(start).Milliseconds()},
	)
	job.Payload = nil

	if err := uc.saveTerminal(ctx, job); err != nil {
		return fmt.Errorf("save failed job: %w", err)
	}
	uc.notify(ctx, job)
	return nil
}

func (uc *DraftUsecase) saveTerminal(ctx context.Context, job *entity.Job) error {
	_, err := retry.Do(ctx, uc.saveRetry, nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.jobs.Save(ctx, job)
	})
	return err
}

// Status returns the stored job.
func (uc *DraftUsecase) Status(ctx context.Context, jobID string) (*entity.Job, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: jobId", entity.ErrMissingField)
	}
	job, err := uc.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (uc *DraftUsecase) notify(ctx context.Context, job *entity.Job) {
	if uc.callbacks == nil || job.CallbackURL == "" || !job.Status.IsTerminal() {
		return
	}
	result := job.ResultDTO()
	target := job.CallbackURL
	bgCtx := logger.Detach(ctx)

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		uc.callbacks.SendJobResult(bgCtx, target, result)
	}()
}

// Wait blocks until every background job and callback has finished.
func (uc *DraftUsecase) Wait() {
	uc.wg.Wait()
}
