package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

type fakeAuditor struct {
	list  []entity.FulfillmentDiscrepancy
	err   error
	calls int
}

func (f *fakeAuditor) Run(ctx context.Context) ([]entity.FulfillmentDiscrepancy, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("la auditoría debe correr con timeout")
	}
	return f.list, f.err
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New("cada cinco minutos", &fakeAuditor{}, zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := New("*/5 * * * *", &fakeAuditor{}, zerolog.Nop())
	require.NoError(t, s.Start())
	require.Len(t, s.cron.Entries(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestRunAudit_RegistraDiscrepancias(t *testing.T) {
	var buf bytes.Buffer
	auditor := &fakeAuditor{list: []entity.FulfillmentDiscrepancy{{OrderID: 6}, {OrderID: 9, Movements: 2}}}
	s := New("@hourly", auditor, zerolog.New(&buf))

	s.runAudit()
	assert.Equal(t, 1, auditor.calls)
	assert.Contains(t, buf.String(), `"discrepancies":2`)
}

func TestRunAudit_ErrorSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	s := New("@hourly", &fakeAuditor{err: errors.New("db caída")}, zerolog.New(&buf))

	s.runAudit()
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "db caída")
}
