package form

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formvalidator/pkg/logger"
)

// Submission is the data gathered from the form at submit time.
type Submission struct {
	ID          uuid.UUID
	Data        map[string]string
	SubmittedAt time.Time
}

// Submit records the current form data, shows the success notice, resets
// the form and clears every field's markers, then schedules the notice to
// hide after the success delay. A pending hide from an earlier submission is
// cancelled so the notice always stays up for the full delay.
//
// A recorder failure is returned after the UI steps have run.
func (v *Validator) Submit(ctx context.Context) (Submission, error) {
	sub := Submission{
		ID:          uuid.New(),
		Data:        map[string]string{},
		SubmittedAt: v.now(),
	}

	form := v.doc.GetElementByID(FormID)
	if form != nil {
		if data := form.FormData(); data != nil {
			sub.Data = data
		}
	}

	recordErr := v.recorder.Record(ctx, sub)

	notice := v.doc.GetElementByID(SuccessMessageID)
	if notice != nil {
		notice.SetDisplay("block")
	}

	if form != nil {
		form.Reset()
	}
	for _, name := range v.rules.Fields() {
		v.clearMarkers(name)
	}

	if notice != nil {
		if v.hideTimer != nil {
			v.hideTimer.Stop()
		}
		v.hideTimer = v.scheduler.AfterFunc(v.successDelay, func() {
			notice.SetDisplay("none")
		})
	}

	v.logger.InfoContext(ctx, "form submitted",
		logger.SubmissionID(sub.ID.String()),
		logger.Duration(v.successDelay),
	)

	if recordErr != nil {
		return sub, fmt.Errorf("record submission %s: %w", sub.ID, recordErr)
	}
	return sub, nil
}
