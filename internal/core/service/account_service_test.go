package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

func newTestAccountService() (*AccountService, *stubCustomerRepo, *stubAddressRepo) {
	customers := newStubCustomerRepo(
		&domain.Customer{ID: "c1", Email: "one@example.com", Role: domain.RoleNormal, Status: domain.StatusActive},
		&domain.Customer{ID: "c2", Email: "two@example.com", Role: domain.RoleNormal, Status: domain.StatusActive},
	)
	addresses := newStubAddressRepo()
	return NewAccountService(customers, addresses, &stubOrderRepo{}, zerolog.Nop()), customers, addresses
}

func countDefaults(addrs []*domain.Address) int {
	n := 0
	for _, a := range addrs {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAccountService_UpdateProfile_Trims(t *testing.T) {
	svc, _, _ := newTestAccountService()

	c, err := svc.UpdateProfile(context.Background(), "c1", ports.ProfileUpdate{FirstName: "  Ana ", LastName: " ", Phone: " 555 "})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if c.FirstName != "Ana" || c.LastName != "" || c.Phone != "555" {
		t.Fatalf("unexpected profile: %+v", c)
	}
}

func TestAccountService_AtMostOneDefault(t *testing.T) {
	svc, _, _ := newTestAccountService()
	ctx := context.Background()

	a1, err := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Home", IsDefault: true})
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	if a1.AddressType != domain.AddressHome {
		t.Fatalf("default address type should be home, got %s", a1.AddressType)
	}
	a2, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Office", AddressType: "office", IsDefault: true})
	a3, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Other"})

	for _, id := range []string{a3.ID, a1.ID, a2.ID, a2.ID} {
		if err := svc.SetDefaultAddress(ctx, "c1", id); err != nil {
			t.Fatalf("SetDefaultAddress(%s): %v", id, err)
		}
		list, err := svc.ListAddresses(ctx, "c1")
		if err != nil {
			t.Fatalf("ListAddresses: %v", err)
		}
		if n := countDefaults(list); n != 1 {
			t.Fatalf("expected exactly one default after setting %s, got %d", id, n)
		}
	}
}

func TestAccountService_ForeignAddressNotFound(t *testing.T) {
	svc, customers, _ := newTestAccountService()
	ctx := context.Background()

	a, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Mine"})

	if err := svc.SetDefaultAddress(ctx, "c2", a.ID); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if customers.get("c2").DefaultAddressID != "" {
		t.Fatalf("foreign address must not become default")
	}
	name := "Hijacked"
	if _, err := svc.UpdateAddress(ctx, "c2", a.ID, ports.AddressPatch{FullName: &name}); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on foreign update, got %v", err)
	}
	if err := svc.DeleteAddress(ctx, "c2", a.ID); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on foreign delete, got %v", err)
	}
}

func TestAccountService_DeleteDefaultClearsIt(t *testing.T) {
	svc, customers, _ := newTestAccountService()
	ctx := context.Background()

	a, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Home", IsDefault: true})
	b, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Office"})

	if err := svc.DeleteAddress(ctx, "c1", b.ID); err != nil {
		t.Fatalf("DeleteAddress: %v", err)
	}
	if customers.get("c1").DefaultAddressID != a.ID {
		t.Fatalf("deleting a non-default address must keep the default")
	}
	if err := svc.DeleteAddress(ctx, "c1", a.ID); err != nil {
		t.Fatalf("DeleteAddress: %v", err)
	}
	if customers.get("c1").DefaultAddressID != "" {
		t.Fatalf("default should be cleared after deleting it")
	}
}

func TestAccountService_SetDefault_AddressDeletedConcurrently(t *testing.T) {
	svc, customers, addresses := newTestAccountService()
	ctx := context.Background()

	keep, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Home", IsDefault: true})
	gone, _ := svc.AddAddress(ctx, "c1", ports.AddressInput{FullName: "Office"})

	// another request deletes the address right after the ownership check
	addresses.afterFind = func(id string) {
		addresses.afterFind = nil
		_ = svc.DeleteAddress(ctx, "c1", id)
	}

	if err := svc.SetDefaultAddress(ctx, "c1", gone.ID); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if got := customers.get("c1").DefaultAddressID; got != "" {
		t.Fatalf("default must not point at a deleted address, got %q", got)
	}

	if err := svc.SetDefaultAddress(ctx, "c1", keep.ID); err != nil {
		t.Fatalf("SetDefaultAddress: %v", err)
	}
	if customers.get("c1").DefaultAddressID != keep.ID {
		t.Fatalf("default should be set on a live address")
	}
}

func TestAccountService_InvalidAddressType(t *testing.T) {
	svc, _, _ := newTestAccountService()
	var ve *domain.ValidationError
	if _, err := svc.AddAddress(context.Background(), "c1", ports.AddressInput{AddressType: "castle"}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
