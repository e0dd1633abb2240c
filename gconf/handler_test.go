package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/lockboxtest/assert"
	"github.com/iov-one/lockbox/store"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := lockboxtest.NewAddress()
	newOwner := lockboxtest.NewAddress()

	cases := map[string]struct {
		signer  lockbox.Address
		msg     lockbox.Msg
		skipCnf bool
		wantErr *errors.Error
		want    myconfig
	}{
		"zero values are not applied": {
			signer: owner,
			msg:    &myconfigMsg{Patch: &myconfig{Text: "updated"}},
			want:   myconfig{Owner: owner, Number: 1, Text: "updated"},
		},
		"owner can be changed": {
			signer: owner,
			msg:    &myconfigMsg{Patch: &myconfig{Owner: newOwner, Number: 5}},
			want:   myconfig{Owner: newOwner, Number: 5, Text: "initial"},
		},
		"only owner can update": {
			signer:  newOwner,
			msg:     &myconfigMsg{Patch: &myconfig{Number: 5}},
			wantErr: errors.ErrUnauthorized,
			want:    myconfig{Owner: owner, Number: 1, Text: "initial"},
		},
		"patch is required": {
			signer:  owner,
			msg:     &myconfigMsg{},
			wantErr: errors.ErrMsg,
			want:    myconfig{Owner: owner, Number: 1, Text: "initial"},
		},
		"invalid result is rejected": {
			signer:  owner,
			msg:     &myconfigMsg{Patch: &myconfig{Number: -1}},
			wantErr: errors.ErrModel,
			want:    myconfig{Owner: owner, Number: 1, Text: "initial"},
		},
		"missing configuration cannot be updated": {
			signer:  owner,
			msg:     &myconfigMsg{Patch: &myconfig{Number: 5}},
			skipCnf: true,
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if !tc.skipCnf {
				initial := &myconfig{Owner: owner, Number: 1, Text: "initial"}
				assert.Nil(t, Save(db, "mypkg", initial))
			}

			auth := &lockboxtest.Auth{Signer: tc.signer}
			h := NewUpdateConfigurationHandler("mypkg", &myconfig{}, auth)
			tx := &lockboxtest.Tx{Msg: tc.msg}

			if _, err := h.Check(context.Background(), db.CacheWrap(), tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			res, err := h.Deliver(context.Background(), db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.skipCnf {
				return
			}
			if tc.wantErr == nil {
				assert.Equal(t, "mypkg.configuration.updated", res.Events[0].Kind)
			}

			var got myconfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.want, got)
		})
	}
}
