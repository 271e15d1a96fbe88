package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/infrastructure/memory"
)

type fakeCommitter struct {
	products []*entity.Product
	users    []*entity.User
	userErr  error
}

func (f *fakeCommitter) CommitProduct(_ context.Context, p *entity.Product) (*dto.ProductCommitResult, error) {
	p.ID = "prod-1"
	f.products = append(f.products, p)
	return &dto.ProductCommitResult{
		Product:   *dto.NewProductResponse(p),
		Inventory: []byte(`{"id":1}`),
		CardHTML:  "<div></div>",
	}, nil
}

func (f *fakeCommitter) CommitUser(_ context.Context, u *entity.User) (*dto.UserCommitResult, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	u.ID = "42"
	f.users = append(f.users, u)
	return &dto.UserCommitResult{User: *dto.NewUserResponse(u)}, nil
}

// failingCompleteRepo guarda el progreso pero no logra cerrar la sesión.
type failingCompleteRepo struct {
	*memory.SessionRepo
}

func (r failingCompleteRepo) Complete(context.Context, string, entity.SessionOutcome) error {
	return errors.New("conexión perdida")
}

func newUseCase() (*UseCase, *memory.SessionRepo, *fakeCommitter) {
	repo := memory.NewSessionRepository()
	fc := &fakeCommitter{}
	return NewUseCase(repo, fc), repo, fc
}

func answerAll(t *testing.T, uc *UseCase, id string, answers ...string) *dto.SessionStepResponse {
	t.Helper()
	var last *dto.SessionStepResponse
	for _, a := range answers {
		resp, err := uc.Continue(context.Background(), id, a)
		require.NoError(t, err)
		require.True(t, resp.OK, "respuesta %q rechazada: %s", a, resp.Error)
		last = resp
	}
	return last
}

func TestStart(t *testing.T) {
	uc, repo, _ := newUseCase()
	resp, err := uc.Start(context.Background(), entity.SessionKindProduct)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "¿Cuál es el nombre del producto?", resp.Question)

	s, err := repo.GetByID(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepName, s.Step)
	assert.Empty(t, s.State)
	assert.False(t, s.Completed)
	assert.False(t, s.CreatedAt.IsZero())

	_, err = uc.Start(context.Background(), entity.SessionKind("admin"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductSession_ReachesConfirmWithSummary(t *testing.T) {
	uc, _, _ := newUseCase()
	start, err := uc.Start(context.Background(), entity.SessionKindProduct)
	require.NoError(t, err)

	last := answerAll(t, uc, start.SessionID, "Aspirin", "", "9.99", "10", "SUP1", "")
	for _, v := range []string{"Aspirin", "9.99", "10", "SUP1"} {
		assert.Contains(t, last.Question, v)
	}
	assert.Contains(t, last.Question, "Descripcion: \n")
	assert.Contains(t, last.Question, "Imagen: \n")
	assert.Contains(t, last.Question, "¿Confirmas la creación del producto? (si/no)")
}

func TestProductSession_ConfirmCreates(t *testing.T) {
	uc, repo, fc := newUseCase()
	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	answerAll(t, uc, start.SessionID, "Aspirin", "", "9.99", "10", "SUP1", "")

	resp, err := uc.Continue(context.Background(), start.SessionID, "Sí")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.True(t, resp.Created)
	require.NotNil(t, resp.Product)
	assert.Equal(t, "9.99", resp.Product.Price.String())
	assert.Equal(t, 10, resp.Product.Stock)
	assert.JSONEq(t, `{"id":1}`, string(resp.Inventory))

	require.Len(t, fc.products, 1)
	assert.Equal(t, "SUP1", fc.products[0].SupplierID)

	s, _ := repo.GetByID(context.Background(), start.SessionID)
	assert.True(t, s.Completed)
	assert.False(t, s.Canceled)
	assert.Empty(t, s.Error)
	assert.Contains(t, string(s.Result), `"product"`)
}

func TestConfirm_NegativeCancels(t *testing.T) {
	uc, repo, fc := newUseCase()
	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	answerAll(t, uc, start.SessionID, "Aspirin", "", "9.99", "10", "SUP1", "")

	resp, err := uc.Continue(context.Background(), start.SessionID, "no")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.True(t, resp.Canceled)
	assert.Equal(t, canceledMessage, resp.Message)
	assert.Empty(t, fc.products)

	s, _ := repo.GetByID(context.Background(), start.SessionID)
	assert.True(t, s.Completed)
	assert.True(t, s.Canceled)
	assert.Nil(t, s.Result)
}

func TestContinue_CompletedSessionIsRejected(t *testing.T) {
	uc, repo, _ := newUseCase()
	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	answerAll(t, uc, start.SessionID, "Aspirin", "", "9.99", "10", "SUP1", "")
	_, err := uc.Continue(context.Background(), start.SessionID, "no")
	require.NoError(t, err)

	before, _ := repo.GetByID(context.Background(), start.SessionID)
	for _, answer := range []string{"si", "otro", ""} {
		_, err := uc.Continue(context.Background(), start.SessionID, answer)
		assert.ErrorIs(t, err, domain.ErrSessionCompleted)
	}
	after, _ := repo.GetByID(context.Background(), start.SessionID)
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Step, after.Step)
}

func TestContinue_InvalidAnswerLeavesSessionUntouched(t *testing.T) {
	uc, repo, _ := newUseCase()
	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	answerAll(t, uc, start.SessionID, "Aspirin", "")

	before, _ := repo.GetByID(context.Background(), start.SessionID)
	for _, bad := range []string{"0", "-5", "abc", ""} {
		resp, err := uc.Continue(context.Background(), start.SessionID, bad)
		require.NoError(t, err)
		assert.False(t, resp.OK)
		assert.Equal(t, "Precio inválido. Ingresa un número mayor a 0.", resp.Error)
		assert.Equal(t, "Indica el precio (número mayor a 0):", resp.Question)
	}
	after, _ := repo.GetByID(context.Background(), start.SessionID)
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, entity.StepPrice, after.Step)

	answerAll(t, uc, start.SessionID, "0.01")
	resp, err := uc.Continue(context.Background(), start.SessionID, "-1")
	require.NoError(t, err)
	assert.False(t, resp.OK)
	answerAll(t, uc, start.SessionID, "0")
}

func TestUserSession_EmailRetry(t *testing.T) {
	uc, _, _ := newUseCase()
	start, err := uc.Start(context.Background(), entity.SessionKindUser)
	require.NoError(t, err)
	answerAll(t, uc, start.SessionID, "Ana", "Pérez")

	first, err := uc.Continue(context.Background(), start.SessionID, "not-an-email")
	require.NoError(t, err)
	assert.False(t, first.OK)
	second, err := uc.Continue(context.Background(), start.SessionID, "not-an-email")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	answerAll(t, uc, start.SessionID, "a@b.co")
}

func TestUserSession_ConfirmAndAuditMasksPassword(t *testing.T) {
	uc, _, fc := newUseCase()
	start, _ := uc.Start(context.Background(), entity.SessionKindUser)
	last := answerAll(t, uc, start.SessionID, "Ana", "Pérez", "ana@farma.co", "secreta", "", "", "CUSTOMER")
	assert.NotContains(t, last.Question, "secreta")

	resp, err := uc.Continue(context.Background(), start.SessionID, "y")
	require.NoError(t, err)
	assert.True(t, resp.Created)
	require.NotNil(t, resp.User)
	assert.Equal(t, "42", resp.User.ID)
	assert.Equal(t, "customer", resp.User.AccountKind)
	require.Len(t, fc.users, 1)
	assert.Equal(t, "secreta", fc.users[0].Password)

	audit, err := uc.Get(context.Background(), start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "****", audit.State["password"])
	assert.True(t, audit.Completed)
	assert.Contains(t, string(audit.Result), `"id":"42"`)
}

func TestUserSession_CommitFailureIsTerminal(t *testing.T) {
	uc, repo, fc := newUseCase()
	fc.userErr = errors.Join(domain.ErrConfiguration, errors.New("falta USER_MS_SUPPLIER_ROLE_ID"))
	start, _ := uc.Start(context.Background(), entity.SessionKindUser)
	answerAll(t, uc, start.SessionID, "Ana", "Pérez", "ana@farma.co", "secreta", "", "", "supplier")

	resp, err := uc.Continue(context.Background(), start.SessionID, "si")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommitFailed)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	require.NotNil(t, resp)
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)

	s, _ := repo.GetByID(context.Background(), start.SessionID)
	assert.True(t, s.Completed)
	assert.NotEmpty(t, s.Error)
	assert.Nil(t, s.Result)

	_, err = uc.Continue(context.Background(), start.SessionID, "si")
	assert.ErrorIs(t, err, domain.ErrSessionCompleted)
}

func TestContinue_NotFoundAndKindMismatch(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Continue(context.Background(), "no-existe", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	_, err = uc.ContinueAs(context.Background(), entity.SessionKindUser, start.SessionID, "Ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := uc.ContinueAs(context.Background(), entity.SessionKindProduct, start.SessionID, "Aspirin")
	require.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestContinue_UnknownPersistedStep(t *testing.T) {
	uc, repo, _ := newUseCase()
	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	require.NoError(t, repo.SaveProgress(context.Background(), start.SessionID, map[string]string{}, entity.StepEmail))

	_, err := uc.Continue(context.Background(), start.SessionID, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestProductSession_CloseFailureDoesNotAllowSecondCommit(t *testing.T) {
	repo := failingCompleteRepo{memory.NewSessionRepository()}
	fc := &fakeCommitter{}
	uc := NewUseCase(repo, fc)
	start, _ := uc.Start(context.Background(), entity.SessionKindProduct)
	answerAll(t, uc, start.SessionID, "Aspirin", "", "9.99", "10", "SUP1", "")

	resp, err := uc.Continue(context.Background(), start.SessionID, "si")
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, "prod-1", resp.Product.ID)

	s, _ := repo.GetByID(context.Background(), start.SessionID)
	assert.False(t, s.Completed)
	assert.Equal(t, entity.StepCommitting, s.Step)

	_, err = uc.Continue(context.Background(), start.SessionID, "si")
	assert.ErrorIs(t, err, domain.ErrSessionCompleted)
	assert.Len(t, fc.products, 1, "una sola entidad creada")
}
