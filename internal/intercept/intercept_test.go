package intercept

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/repository"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type entry struct {
	level   zapcore.Level
	message string
}

func entries(logs *observer.ObservedLogs) []entry {
	var out []entry
	for _, e := range logs.All() {
		out = append(out, entry{level: e.Level, message: e.Message})
	}
	return out
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// failingStore fails every call with err.
type failingStore struct {
	domain.ProductStore
	err error
}

func (f failingStore) FindByID(context.Context, string) (domain.Product, bool, error) {
	return domain.Product{}, false, f.err
}

func TestStore_FindByIDTiers(t *testing.T) {
	ctx := context.Background()
	logger, logs := observed()
	backing := repository.NewMemoryProductStore()
	saved, err := backing.Save(ctx, domain.Product{Name: "x"})
	require.NoError(t, err)

	store := Store(backing, logger)

	product, found, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, product)

	_, found, err = store.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, []entry{
		{zap.InfoLevel, "Entering ProductStore.FindByID"},
		{zap.InfoLevel, "Exiting ProductStore.FindByID after successful execution"},
		{zap.InfoLevel, "Entering ProductStore.FindByID"},
		{zap.WarnLevel, "Exiting ProductStore.FindByID with absent result"},
	}, entries(logs))
}

func TestStore_ErrorTierPropagatesError(t *testing.T) {
	logger, logs := observed()
	boom := errors.New("connection reset")
	store := Store(failingStore{err: boom}, logger)

	_, _, err := store.FindByID(context.Background(), "id-1")
	assert.Same(t, boom, err)

	require.Equal(t, 2, logs.Len())
	last := logs.All()[1]
	assert.Equal(t, zap.ErrorLevel, last.Level)
	assert.Equal(t, "Exiting ProductStore.FindByID with error", last.Message)
	assert.Equal(t, "internal", last.ContextMap()["kind"])
	assert.Equal(t, "connection reset", last.ContextMap()["message"])
}

func TestService_ErrorKindSeesThroughWrapping(t *testing.T) {
	logger, logs := observed()
	cause := fmt.Errorf("%w: failed to get product: %w", domain.ErrPersistence, errors.New("throttled"))
	svc := Service(service.NewProductService(failingStore{err: cause}, zap.NewNop()), logger)

	_, err := svc.RetrieveOne(context.Background(), "id-1")
	require.ErrorIs(t, err, domain.ErrPersistence)

	failures := logs.FilterLevelExact(zap.ErrorLevel).All()
	require.Len(t, failures, 1)
	assert.Equal(t, "Exiting ProductService.RetrieveOne with error", failures[0].Message)
	assert.Equal(t, "persistence", failures[0].ContextMap()["kind"])
}

func TestStore_FindAllEmptyIsWarn(t *testing.T) {
	logger, logs := observed()
	store := Store(repository.NewMemoryProductStore(), logger)

	products, err := store.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)

	assert.Equal(t, zap.WarnLevel, logs.All()[1].Level)
	assert.Equal(t, "Exiting ProductStore.FindAll with empty result", logs.All()[1].Message)
}

func TestService_OutcomeTiers(t *testing.T) {
	ctx := context.Background()
	logger, logs := observed()
	svc := Service(service.NewProductService(repository.NewMemoryProductStore(), zap.NewNop()), logger)

	saved, outcome, err := svc.Stock(ctx, domain.Product{Name: "Lamp", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)
	assert.Equal(t, domain.Stocked, outcome)
	assert.NotEmpty(t, saved.ID)

	outcome, err = svc.Unstock(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, domain.NotFound, outcome)

	assert.Equal(t, []entry{
		{zap.InfoLevel, "Entering ProductService.Stock"},
		{zap.InfoLevel, "Exiting ProductService.Stock after successful execution"},
		{zap.InfoLevel, "Entering ProductService.Unstock"},
		{zap.WarnLevel, "Exiting ProductService.Unstock with NotFound"},
	}, entries(logs))
}

func TestLayers_EachBoundaryLoggedOnce(t *testing.T) {
	ctx := context.Background()
	logger, logs := observed()
	store := Store(repository.NewMemoryProductStore(), logger)
	svc := Service(service.NewProductService(store, zap.NewNop()), logger)

	retrieval, err := svc.RetrieveOne(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, retrieval.IsFound())

	assert.Equal(t, []entry{
		{zap.InfoLevel, "Entering ProductService.RetrieveOne"},
		{zap.InfoLevel, "Entering ProductStore.FindByID"},
		{zap.WarnLevel, "Exiting ProductStore.FindByID with absent result"},
		{zap.WarnLevel, "Exiting ProductService.RetrieveOne with absent result"},
	}, entries(logs))
}

func TestCall_ReentrantBoundaryNotLoggedTwice(t *testing.T) {
	logger, logs := observed()
	i := newInterceptor(logger)
	always := func(int) (bool, string) { return true, "" }

	_, err := call(context.Background(), i, "Outer", "Op", always, func(ctx context.Context) (int, error) {
		return call(ctx, i, "Outer", "Inner", always, func(context.Context) (int, error) { return 1, nil })
	})
	require.NoError(t, err)

	assert.Equal(t, []entry{
		{zap.InfoLevel, "Entering Outer.Op"},
		{zap.InfoLevel, "Exiting Outer.Op after successful execution"},
	}, entries(logs))
}

func TestCall_PanicIsLoggedAndReraised(t *testing.T) {
	logger, logs := observed()
	i := newInterceptor(logger)

	assert.PanicsWithValue(t, "nil map write", func() {
		_, _ = call(context.Background(), i, "Boundary", "Op",
			func(int) (bool, string) { return true, "" },
			func(context.Context) (int, error) { panic("nil map write") })
	})

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zap.ErrorLevel, logs.All()[1].Level)
	assert.Equal(t, "panic", logs.All()[1].ContextMap()["kind"])
}

func TestHandler_StatusTiers(t *testing.T) {
	logger, logs := observed()
	router := gin.New()
	group := router.Group("/", Handler(logger))
	group.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	group.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("store down"))
		c.Abort()
	})

	for _, path := range []string{"/ok", "/missing", "/broken"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	all := logs.All()
	require.Len(t, all, 6)
	assert.Equal(t, zap.InfoLevel, all[1].Level)
	assert.Equal(t, zap.WarnLevel, all[3].Level)
	assert.True(t, strings.HasPrefix(all[3].Message, "Exiting ProductHandler."))
	assert.True(t, strings.HasSuffix(all[3].Message, " with status 404"))
	assert.Equal(t, zap.ErrorLevel, all[5].Level)
	assert.Equal(t, "store down", all[5].ContextMap()["message"])
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "CreateProduct",
		operationName("github.com/cloud-wave-best-zizon/product-inventory/internal/handler.(*ProductHandler).CreateProduct-fm"))
	assert.Equal(t, "plain", operationName("plain"))
}
