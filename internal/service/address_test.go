package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func addressInput(city string, isDefault bool) *dto.AddressInput {
	return &dto.AddressInput{
		Name:       "Asha",
		Address:    "12 MG Road",
		City:       city,
		Country:    "India",
		PostalCode: "411001",
		Phone:      "9999999999",
		IsDefault:  isDefault,
	}
}

func TestAddressDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAddressService(db, repository.NewAddressRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)

	first, err := svc.Create(ctx, user.ID, addressInput("Pune", false))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !first.IsDefault {
		t.Fatal("first address should become the default")
	}

	second, err := svc.Create(ctx, user.ID, addressInput("Mumbai", true))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	list, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
			if a.ID != second.ID {
				t.Fatalf("default is %s, want %s", a.City, second.City)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("defaults = %d", defaults)
	}

	updated, err := svc.Update(ctx, user.ID, first.ID, addressInput("Nagpur", true))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.City != "Nagpur" || !updated.IsDefault {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestAddressValidationAndOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAddressService(db, repository.NewAddressRepository(db))
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	other := testutil.CreateUser(t, db, "b@example.com", model.RoleUser)

	_, err := svc.Create(ctx, owner.ID, addressInput(" ", false))
	if !errors.Is(err, model.ErrInvalidInput) || err.Error() != "All fields are required" {
		t.Fatalf("blank city: %v", err)
	}

	address, err := svc.Create(ctx, owner.ID, addressInput("Pune", false))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, other.ID, address.ID, addressInput("Goa", false)); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("foreign update: %v", err)
	}
	if err := svc.Delete(ctx, other.ID, address.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("foreign delete: %v", err)
	}
	if err := svc.Delete(ctx, owner.ID, address.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestAddressDeletePromotesNewestToDefault(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAddressService(db, repository.NewAddressRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i, city := range []string{"Pune", "Mumbai", "Delhi"} {
		a, err := svc.Create(ctx, user.ID, addressInput(city, false))
		if err != nil {
			t.Fatalf("create %s: %v", city, err)
		}
		if err := db.Model(a).Update("created_at", base.Add(time.Duration(i)*time.Hour)).Error; err != nil {
			t.Fatalf("backdate: %v", err)
		}
		ids = append(ids, a.ID)
	}
	pune, mumbai, delhi := ids[0], ids[1], ids[2]

	defaultOf := func() (string, int) {
		t.Helper()
		list, err := svc.List(ctx, user.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		id, n := "", 0
		for _, a := range list {
			if a.IsDefault {
				id = a.ID
				n++
			}
		}
		return id, n
	}

	if id, _ := defaultOf(); id != pune {
		t.Fatalf("default = %s, want first address", id)
	}

	if err := svc.Delete(ctx, user.ID, pune); err != nil {
		t.Fatalf("delete default: %v", err)
	}
	if id, n := defaultOf(); id != delhi || n != 1 {
		t.Fatalf("default = %s (%d defaults), want newest", id, n)
	}

	if err := svc.Delete(ctx, user.ID, mumbai); err != nil {
		t.Fatalf("delete other: %v", err)
	}
	if id, n := defaultOf(); id != delhi || n != 1 {
		t.Fatalf("default moved to %s (%d defaults)", id, n)
	}

	if err := svc.Delete(ctx, user.ID, delhi); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if _, n := defaultOf(); n != 0 {
		t.Fatalf("defaults = %d after deleting everything", n)
	}
	if err := svc.Delete(ctx, user.ID, delhi); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddressDeleteInUse(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAddressService(db, repository.NewAddressRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	address := testutil.CreateAddress(t, db, user.ID)

	err := repository.NewOrderRepository(db).Create(ctx, db, &model.Order{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		AddressID:     address.ID,
		Total:         decimal.NewFromInt(10),
		Status:        model.OrderStatusPending,
		PaymentMethod: model.PaymentCashOnDelivery,
		PaymentStatus: model.PaymentStatusPending,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if err := svc.Delete(ctx, user.ID, address.ID); !errors.Is(err, model.ErrInUse) {
		t.Fatalf("expected in use, got %v", err)
	}
}
