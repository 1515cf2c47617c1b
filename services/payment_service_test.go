package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppit/gateway"
	"shoppit/models"
	"shoppit/repositories"
)

type mockCartReader struct {
	cart *models.Cart
	paid bool
}

func (m *mockCartReader) GetUnpaid(_ context.Context, cartCode string) (*models.Cart, error) {
	if m.cart == nil || m.cart.CartCode != cartCode {
		return nil, pgx.ErrNoRows
	}
	return m.cart, nil
}

func (m *mockCartReader) HasPaid(_ context.Context, _ string) (bool, error) {
	return m.paid, nil
}

type mockTxStore struct {
	byRef        map[string]*models.Transaction
	cart         *models.Cart
	createErrs   []error
	nextID       int
	markedFailed []int
}

func newMockTxStore(cart *models.Cart) *mockTxStore {
	return &mockTxStore{byRef: map[string]*models.Transaction{}, cart: cart}
}

func (m *mockTxStore) CreatePending(_ context.Context, t *models.Transaction) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	m.nextID++
	t.ID = m.nextID
	t.Status = models.TransactionPending
	m.byRef[t.Ref] = t
	return nil
}

func (m *mockTxStore) FindByRef(_ context.Context, ref string) (*models.Transaction, error) {
	t, ok := m.byRef[ref]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (m *mockTxStore) MarkFailed(_ context.Context, id int) error {
	m.markedFailed = append(m.markedFailed, id)
	for _, t := range m.byRef {
		if t.ID == id && t.Status == models.TransactionPending {
			t.Status = models.TransactionFailed
		}
	}
	return nil
}

func (m *mockTxStore) MarkSuccessful(_ context.Context, txID, cartID, userID int) error {
	for _, t := range m.byRef {
		if t.ID == txID {
			t.Status = models.TransactionSuccessful
		}
	}
	if m.cart != nil && m.cart.ID == cartID {
		m.cart.Paid = true
		if m.cart.UserID == nil {
			m.cart.UserID = &userID
		}
	}
	return nil
}

type mockUserFinder struct {
	user *models.User
}

func (m *mockUserFinder) FindByID(_ context.Context, id int) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, pgx.ErrNoRows
	}
	return m.user, nil
}

type mockGateway struct {
	initiateErr   error
	initiateCalls int
	lastInitiate  gateway.InitiateRequest

	verifyResult *gateway.VerifyResult
	verifyErr    error
	verifyCalls  int
}

func (m *mockGateway) Initiate(_ context.Context, req gateway.InitiateRequest) (*gateway.InitiateResult, error) {
	m.initiateCalls++
	m.lastInitiate = req
	if m.initiateErr != nil {
		return nil, m.initiateErr
	}
	return &gateway.InitiateResult{CheckoutURL: "https://checkout.example/pay", Raw: []byte(`{"status":"success"}`)}, nil
}

func (m *mockGateway) Verify(_ context.Context, _ string) (*gateway.VerifyResult, error) {
	m.verifyCalls++
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.verifyResult, nil
}

func testCart() *models.Cart {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return &models.Cart{
		ID:       7,
		CartCode: "cart-1",
		Items: []models.CartItem{
			{ID: 1, CartID: 7, ProductID: 1, Quantity: 2, Product: &models.Product{ID: 1, Price: price("100.00")}},
			{ID: 2, CartID: 7, ProductID: 2, Quantity: 1, Product: &models.Product{ID: 2, Price: price("50.00")}},
		},
	}
}

func newTestPaymentService(cart *models.Cart, paid bool) (*PaymentService, *mockTxStore, *mockGateway) {
	txStore := newMockTxStore(cart)
	gw := &mockGateway{}
	users := &mockUserFinder{user: &models.User{ID: 3, Username: "jane", Email: "jane@example.com"}}
	svc := NewPaymentService(
		txStore,
		&mockCartReader{cart: cart, paid: paid},
		users,
		gw,
		decimal.RequireFromString("15.00"),
		"NGN",
		"https://shop.example/payment-status",
	)
	return svc, txStore, gw
}

func TestInitiateSnapshotsAmountWithTax(t *testing.T) {
	svc, txStore, gw := newTestPaymentService(testCart(), false)

	resp, err := svc.Initiate(context.Background(), "cart-1", 3)
	require.NoError(t, err)
	require.NotEmpty(t, resp.TxRef)
	assert.Equal(t, "https://checkout.example/pay", resp.CheckoutURL)

	created, ok := txStore.byRef[resp.TxRef]
	require.True(t, ok)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("265.00")),
		"expected 265.00, got %s", created.Amount)
	assert.Equal(t, "NGN", created.Currency)
	assert.Equal(t, models.TransactionPending, created.Status)
	assert.Equal(t, 7, created.CartID)
	assert.Equal(t, 3, created.UserID)

	assert.True(t, gw.lastInitiate.Amount.Equal(created.Amount))
	assert.Equal(t, "jane@example.com", gw.lastInitiate.Customer.Email)
}

func TestInitiateUnknownCart(t *testing.T) {
	svc, txStore, gw := newTestPaymentService(nil, false)

	_, err := svc.Initiate(context.Background(), "missing", 3)
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Empty(t, txStore.byRef)
	assert.Zero(t, gw.initiateCalls)
}

func TestInitiateAlreadyPaidCart(t *testing.T) {
	svc, txStore, gw := newTestPaymentService(nil, true)

	_, err := svc.Initiate(context.Background(), "cart-1", 3)
	assert.ErrorIs(t, err, ErrCartAlreadyPaid)
	assert.Empty(t, txStore.byRef, "no transaction may be created for a settled cart")
	assert.Zero(t, gw.initiateCalls)
}

func TestInitiateEmptyCart(t *testing.T) {
	cart := testCart()
	cart.Items = nil
	svc, _, gw := newTestPaymentService(cart, false)

	_, err := svc.Initiate(context.Background(), "cart-1", 3)
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Zero(t, gw.initiateCalls)
}

func TestInitiateGatewayFailureMarksTransactionFailed(t *testing.T) {
	svc, txStore, gw := newTestPaymentService(testCart(), false)
	gw.initiateErr = gateway.ErrUnavailable

	_, err := svc.Initiate(context.Background(), "cart-1", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrUnavailable)

	require.Len(t, txStore.byRef, 1)
	for _, created := range txStore.byRef {
		assert.Equal(t, models.TransactionFailed, created.Status,
			"a failed initiation must not leave a pending orphan")
	}
}

func TestInitiateRetriesOnceOnDuplicateRef(t *testing.T) {
	svc, txStore, _ := newTestPaymentService(testCart(), false)
	txStore.createErrs = []error{repositories.ErrDuplicateRef}

	resp, err := svc.Initiate(context.Background(), "cart-1", 3)
	require.NoError(t, err)
	assert.Len(t, txStore.byRef, 1)
	assert.NotEmpty(t, resp.TxRef)
}

func TestInitiateCartGoneDuringCreate(t *testing.T) {
	svc, txStore, gw := newTestPaymentService(testCart(), false)
	txStore.createErrs = []error{repositories.ErrCartGone}

	_, err := svc.Initiate(context.Background(), "cart-1", 3)
	assert.ErrorIs(t, err, ErrCartAlreadyPaid)
	assert.Zero(t, gw.initiateCalls)
}

func pendingTransaction(cart *models.Cart) *models.Transaction {
	return &models.Transaction{
		ID:       1,
		Ref:      "ref-123",
		CartID:   cart.ID,
		Amount:   decimal.RequireFromString("265.00"),
		Currency: "NGN",
		UserID:   3,
		Status:   models.TransactionPending,
	}
}

func successfulVerify() *gateway.VerifyResult {
	return &gateway.VerifyResult{
		Status:   gateway.StatusSuccessful,
		Amount:   decimal.RequireFromString("265.00"),
		Currency: "NGN",
		TxRef:    "ref-123",
	}
}

func TestReconcileSuccessSettlesTransactionAndCart(t *testing.T) {
	cart := testCart()
	svc, txStore, gw := newTestPaymentService(cart, false)
	txStore.byRef["ref-123"] = pendingTransaction(cart)
	gw.verifyResult = successfulVerify()

	result, err := svc.Reconcile(context.Background(), models.PaymentCallbackRequest{
		Status: "successful", TxRef: "ref-123", TransactionID: "556789",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionSuccessful, result.Status)
	assert.False(t, result.AlreadyProcessed)

	assert.Equal(t, models.TransactionSuccessful, txStore.byRef["ref-123"].Status)
	assert.True(t, cart.Paid)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, 3, *cart.UserID, "an anonymous cart inherits the paying user")
}

func TestReconcileAmountMismatchLeavesEverythingPending(t *testing.T) {
	cart := testCart()
	svc, txStore, gw := newTestPaymentService(cart, false)
	txStore.byRef["ref-123"] = pendingTransaction(cart)
	verify := successfulVerify()
	verify.Amount = decimal.RequireFromString("260.00")
	gw.verifyResult = verify

	_, err := svc.Reconcile(context.Background(), models.PaymentCallbackRequest{
		Status: "successful", TxRef: "ref-123", TransactionID: "556789",
	})
	assert.ErrorIs(t, err, ErrVerificationMismatch)
	assert.Equal(t, models.TransactionPending, txStore.byRef["ref-123"].Status)
	assert.False(t, cart.Paid)
}

func TestReconcileCurrencyMismatch(t *testing.T) {
	cart := testCart()
	svc, txStore, gw := newTestPaymentService(cart, false)
	txStore.byRef["ref-123"] = pendingTransaction(cart)
	verify := successfulVerify()
	verify.Currency = "USD"
	gw.verifyResult = verify

	_, err := svc.Reconcile(context.Background(), models.PaymentCallbackRequest{
		Status: "successful", TxRef: "ref-123", TransactionID: "556789",
	})
	assert.ErrorIs(t, err, ErrVerificationMismatch)
	assert.False(t, cart.Paid)
}

func TestReconcileIsIdempotent(t *testing.T) {
	cart := testCart()
	svc, txStore, gw := newTestPaymentService(cart, false)
	txStore.byRef["ref-123"] = pendingTransaction(cart)
	gw.verifyResult = successfulVerify()

	req := models.PaymentCallbackRequest{Status: "successful", TxRef: "ref-123", TransactionID: "556789"}

	first, err := svc.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.AlreadyProcessed)

	second, err := svc.Reconcile(context.Background(), req)
	require.NoError(t, err, "replaying a settled callback must not error")
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, models.TransactionSuccessful, txStore.byRef["ref-123"].Status)
	assert.True(t, cart.Paid)
	assert.Equal(t, 2, gw.verifyCalls)
}

func TestReconcileMissingFields(t *testing.T) {
	svc, _, gw := newTestPaymentService(testCart(), false)

	for _, req := range []models.PaymentCallbackRequest{
		{Status: "successful", TransactionID: "556789"},
		{Status: "successful", TxRef: "ref-123"},
	} {
		_, err := svc.Reconcile(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingCallbackField)
	}
	assert.Zero(t, gw.verifyCalls)
}

func TestReconcileNonSuccessfulStatusIsNotTrusted(t *testing.T) {
	cart := testCart()
	svc, txStore, gw := newTestPaymentService(cart, false)
	txStore.byRef["ref-123"] = pendingTransaction(cart)

	_, err := svc.Reconcile(context.Background(), models.PaymentCallbackRequest{
		Status: "cancelled", TxRef: "ref-123", TransactionID: "556789",
	})
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Zero(t, gw.verifyCalls, "a non-successful callback must not trigger a verify call")
	assert.Equal(t, models.TransactionPending, txStore.byRef["ref-123"].Status)
}

func TestReconcileUnknownRef(t *testing.T) {
	svc, _, gw := newTestPaymentService(testCart(), false)
	gw.verifyResult = successfulVerify()

	_, err := svc.Reconcile(context.Background(), models.PaymentCallbackRequest{
		Status: "successful", TxRef: "nope", TransactionID: "556789",
	})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestReconcileGatewayFailure(t *testing.T) {
	cart := testCart()
	svc, txStore, gw := newTestPaymentService(cart, false)
	txStore.byRef["ref-123"] = pendingTransaction(cart)
	gw.verifyErr = gateway.ErrUnavailable

	_, err := svc.Reconcile(context.Background(), models.PaymentCallbackRequest{
		Status: "successful", TxRef: "ref-123", TransactionID: "556789",
	})
	assert.ErrorIs(t, err, gateway.ErrUnavailable)
	assert.Equal(t, models.TransactionPending, txStore.byRef["ref-123"].Status)
	assert.False(t, cart.Paid)
}
