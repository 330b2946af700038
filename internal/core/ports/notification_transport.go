package ports

import (
	"context"
	"fmt"
)

// AddressKind is the class of a notification recipient.
type AddressKind string

const (
	AddressCustomer  AddressKind = "customer"
	AddressCourier   AddressKind = "courier"
	AddressBroadcast AddressKind = "broadcast"
)

// Address is a logical notification destination. Broadcast has no ID.
type Address struct {
	Kind AddressKind
	ID   string
}

func CustomerAddress(id string) Address {
	return Address{Kind: AddressCustomer, ID: id}
}

func CourierAddress(id string) Address {
	return Address{Kind: AddressCourier, ID: id}
}

func BroadcastAddress() Address {
	return Address{Kind: AddressBroadcast}
}

// String renders "customer/<id>", "courier/<id>" or "broadcast".
func (a Address) String() string {
	if a.ID == "" {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s/%s", a.Kind, a.ID)
}

// NotificationTransport delivers an encoded payload to one address.
// Implementations must preserve the order of Send calls made for the same
// address from one goroutine.
type NotificationTransport interface {
	Send(ctx context.Context, address Address, payload []byte) error
}
