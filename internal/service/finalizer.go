package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"protocolotea/internal/convert"
	"protocolotea/internal/models"
	"protocolotea/internal/staging"
	"protocolotea/internal/validation"
)

// State is a step of the lesson finalization
type State string

const (
	StateIdle               State = "idle"
	StateValidating         State = "validating"
	StateConverting         State = "converting"
	StatePersistingLesson   State = "persisting_lesson"
	StatePersistingChildren State = "persisting_children"
	StateCleared            State = "cleared"
	StateError              State = "error"
)

// StateObserver is called on every transition of a finalization
type StateObserver func(draftID uuid.UUID, from, to State)

// FinalizeResult describes a finalization, successful or not
type FinalizeResult struct {
	// AulaID is the lesson row, set as soon as it exists, including on failure
	AulaID int64 `json:"aula_id,omitempty"`
	// ReusedAula is true when a previous failed attempt had already created the lesson row
	ReusedAula      bool    `json:"reused_aula"`
	Atividades      int     `json:"atividades_salvas"`
	Intercorrencias int     `json:"intercorrencias_salvas"`
	Skipped         []int   `json:"ignoradas,omitempty"`
	Trace           []State `json:"trace"`
}

// State returns the last state reached
func (r *FinalizeResult) State() State {
	if len(r.Trace) == 0 {
		return StateIdle
	}
	return r.Trace[len(r.Trace)-1]
}

// LessonReport summarizes a finalized lesson for notifications
type LessonReport struct {
	Aula            *models.Aula
	AprendizID      int64
	Atividades      int
	Intercorrencias int
	Estatisticas    staging.AtividadeStats
}

// Finalizer persists a draft as one lesson: the parent row first, then every
// activity with its incidents. Staged data is kept on every failure.
type Finalizer struct {
	catalog  PlanCatalog
	aulas    AulaCreator
	children ChildrenCreator
	notifier LessonNotifier
	observer StateObserver
	debug    bool
}

// NewFinalizer creates a finalizer. notifier may be nil.
func NewFinalizer(catalog PlanCatalog, aulas AulaCreator, children ChildrenCreator, notifier LessonNotifier, debug bool) *Finalizer {
	return &Finalizer{
		catalog:  catalog,
		aulas:    aulas,
		children: children,
		notifier: notifier,
		debug:    debug,
	}
}

// SetObserver registers fn to be called on every transition
func (f *Finalizer) SetObserver(fn StateObserver) {
	f.observer = fn
}

// Finalize runs the finalization of d. The caller must hold the draft lock,
// see staging.Registry.With. On failure the returned result is still non-nil
// and carries the lesson id when the parent row was created.
func (f *Finalizer) Finalize(ctx context.Context, d *staging.Draft) (*FinalizeResult, error) {
	result := &FinalizeResult{Trace: []State{StateIdle}}

	f.transition(d, result, StateValidating)
	if d.Atividades.Len() == 0 {
		return f.fail(d, result, ErrNoActivities)
	}
	if report := d.Validate(); !report.Valid {
		return f.fail(d, result, reportError(report))
	}
	report, err := f.CheckCatalog(ctx, d)
	if err != nil {
		return f.fail(d, result, err)
	}
	if !report.Valid {
		return f.fail(d, result, reportError(report))
	}

	f.transition(d, result, StateConverting)
	stats := d.Atividades.Statistics()
	keys := d.Atividades.Keys()
	inputs, skipped := convert.FormsToProgresso(d.Forms())
	result.Skipped = skipped
	converted := keptKeys(keys, skipped)
	if len(inputs) == 0 {
		return f.fail(d, result, ErrNoActivities)
	}

	f.transition(d, result, StatePersistingLesson)
	if d.AulaID != 0 {
		result.AulaID = d.AulaID
		result.ReusedAula = true
		log.Printf("Draft %s: reusing aula %d from a previous attempt", d.ID, d.AulaID)
	} else {
		aula, err := f.aulas.Create(ctx, models.AulaInput{
			ProfessorID:               d.ProfessorID,
			PlanejamentoIntervencaoID: d.PlanejamentoIntervencaoID,
			DataAula:                  d.DataAula,
			Observacoes:               d.Observacoes,
		})
		if err != nil {
			return f.fail(d, result, err)
		}
		d.AulaID = aula.ID
		result.AulaID = aula.ID
	}

	f.transition(d, result, StatePersistingChildren)
	attach := func(index int, progressoID int64) ([]models.RegistroIntercorrenciaInput, error) {
		return d.Intercorrencias.PrepareForPersist(converted[index], progressoID), nil
	}
	rows, registros, err := f.children.CreateBatchWithIntercorrencias(ctx, d.AulaID, inputs, attach)
	if err != nil {
		return f.fail(d, result, err)
	}
	result.Atividades = len(rows)
	result.Intercorrencias = len(registros)

	aula := &models.Aula{
		ID:                        d.AulaID,
		ProfessorID:               d.ProfessorID,
		PlanejamentoIntervencaoID: d.PlanejamentoIntervencaoID,
		DataAula:                  d.DataAula,
		Observacoes:               d.Observacoes,
	}
	d.Clear()
	f.transition(d, result, StateCleared)
	log.Printf("Draft %s finalized as aula %d: %d atividades, %d intercorrências",
		d.ID, aula.ID, result.Atividades, result.Intercorrencias)

	if f.notifier != nil {
		report := LessonReport{
			Aula:            aula,
			AprendizID:      d.AprendizID,
			Atividades:      result.Atividades,
			Intercorrencias: result.Intercorrencias,
			Estatisticas:    stats,
		}
		if err := f.notifier.LessonFinalized(ctx, report); err != nil {
			log.Printf("Warning: failed to notify finalized aula %d: %v", aula.ID, err)
		}
	}

	return result, nil
}

// CheckCatalog checks the staged ids of d against its plan's activities and
// the incident catalog. The caller must hold the draft lock.
func (f *Finalizer) CheckCatalog(ctx context.Context, d *staging.Draft) (staging.Report, error) {
	atividades, err := f.catalog.Atividades(ctx, d.PlanejamentoIntervencaoID)
	if err != nil {
		return staging.Report{}, err
	}
	intercorrencias, err := f.catalog.Intercorrencias(ctx)
	if err != nil {
		return staging.Report{}, err
	}

	planned := make(map[int64]bool, len(atividades))
	for _, a := range atividades {
		planned[a.ID] = true
	}
	known := make(map[int64]bool, len(intercorrencias))
	for _, i := range intercorrencias {
		known[i.ID] = true
	}
	return d.CheckCatalog(planned, known), nil
}

func (f *Finalizer) transition(d *staging.Draft, result *FinalizeResult, to State) {
	from := result.State()
	result.Trace = append(result.Trace, to)
	if f.debug {
		log.Printf("[DEBUG] Draft %s: %s -> %s", d.ID, from, to)
	}
	if f.observer != nil {
		f.observer(d.ID, from, to)
	}
}

func (f *Finalizer) fail(d *staging.Draft, result *FinalizeResult, err error) (*FinalizeResult, error) {
	at := result.State()
	f.transition(d, result, StateError)
	err = classify(err)
	if result.AulaID != 0 {
		log.Printf("Finalize of draft %s failed at %s, aula %d kept without its activities: %v", d.ID, at, result.AulaID, err)
	} else {
		log.Printf("Finalize of draft %s failed at %s: %v", d.ID, at, err)
	}
	return result, err
}

func reportError(report staging.Report) error {
	errs := make(validation.Errors, len(report.Errors))
	for i, msg := range report.Errors {
		errs[i] = validation.ValidationError{Field: "rascunho", Message: msg}
	}
	if len(errs) == 0 {
		return &UnexpectedError{Err: fmt.Errorf("validation failed without messages")}
	}
	return errs
}

// keptKeys drops the keys at the skipped indexes, keeping keys aligned with
// the converted inputs
func keptKeys(keys []uuid.UUID, skipped []int) []uuid.UUID {
	kept := make([]uuid.UUID, 0, len(keys))
	next := 0
	for i, key := range keys {
		if next < len(skipped) && skipped[next] == i {
			next++
			continue
		}
		kept = append(kept, key)
	}
	return kept
}
