// Copyright 2024 The go-svm Authors
// This file is part of the go-svm library.
//
// The go-svm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-svm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-svm library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/solgo/go-svm/common"
)

func TestAccountCopyIsDeep(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 64)
	for i := 0; i < 100; i++ {
		var orig Account
		f.Fuzz(&orig)

		cpy := orig.Copy()
		if !cpy.Equal(&orig) {
			t.Fatalf("copy differs from original: %+v != %+v", cpy, orig)
		}
		cpy.Data[0]++
		cpy.Lamports++
		if orig.Data[0] == cpy.Data[0] {
			t.Fatalf("copy shares data with original")
		}
		if orig.Lamports == cpy.Lamports {
			t.Fatalf("copy shares lamports with original")
		}
	}
}

func TestAccountCopyNil(t *testing.T) {
	var a *Account
	if a.Copy() != nil {
		t.Errorf("copy of nil account should be nil")
	}
	empty := &Account{Lamports: 1}
	if cpy := empty.Copy(); cpy.Data != nil {
		t.Errorf("copy of nil data should stay nil, have %x", cpy.Data)
	}
}

func TestSetDataFromSlice(t *testing.T) {
	acct := NewAccount(10, 4, common.Pubkey{})
	src := []byte{1, 2, 3, 4, 5, 6}
	acct.SetDataFromSlice(src)
	src[0] = 0xff

	if have, want := acct.DataLen(), 6; have != want {
		t.Fatalf("wrong data length: have %d, want %d", have, want)
	}
	if acct.Data[0] != 1 {
		t.Errorf("data payload aliases the source slice")
	}
	acct.SetDataFromSlice(nil)
	if acct.DataLen() != 0 {
		t.Errorf("expected empty payload, have %x", acct.Data)
	}
}

func TestAccountEqual(t *testing.T) {
	owner := common.NewUniquePubkey()
	a := &Account{Lamports: 5, Owner: owner, RentEpoch: 3}
	b := &Account{Lamports: 5, Owner: owner, RentEpoch: 3, Data: []byte{}}
	if !a.Equal(b) {
		t.Errorf("nil and empty data should compare equal")
	}
	b.RentEpoch = 4
	if a.Equal(b) {
		t.Errorf("accounts with different rent epochs compared equal")
	}
	if a.Equal(nil) {
		t.Errorf("account compared equal to nil")
	}
}

func TestTransactionAccountCopy(t *testing.T) {
	orig := TransactionAccount{Address: common.Pubkey{1}, Account: &Account{Lamports: 3, Data: []byte{4}}}
	cpy := orig.Copy()
	cpy.Account.Lamports = 9
	cpy.Account.Data[0] = 9
	if orig.Account.Lamports != 3 || orig.Account.Data[0] != 4 {
		t.Fatalf("copy aliases the original account: %+v", orig.Account)
	}
	if cpy.Address != orig.Address {
		t.Fatalf("address not copied: have %v, want %v", cpy.Address, orig.Address)
	}
}
