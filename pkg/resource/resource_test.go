package resource

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/orm"
)

type account struct {
	ID       uint
	Email    string
	Password string
}

func accountResource(a account) Map {
	return Map{"id": a.ID, "email": a.Email}
}

func TestResourceRespond(t *testing.T) {
	w := httptest.NewRecorder()
	New(accountResource, account{ID: 1, Email: "a@b.co", Password: "hash"}).
		WithMeta(Map{"v": 1}).
		Respond(w)

	assert.JSONEq(t, `{"data":{"id":1,"email":"a@b.co"},"meta":{"v":1}}`, w.Body.String())
}

func TestCollectionRespond(t *testing.T) {
	w := httptest.NewRecorder()
	CollectionOf(accountResource, []account{{ID: 1, Email: "a@b.co"}, {ID: 2, Email: "c@d.co"}}).
		WithPagination(orm.Pagination{Total: 2, PerPage: 15, CurrentPage: 1, LastPage: 1}).
		Respond(w)

	assert.JSONEq(t, `{
		"data":[{"id":1,"email":"a@b.co"},{"id":2,"email":"c@d.co"}],
		"pagination":{"total":2,"per_page":15,"current_page":1,"last_page":1}
	}`, w.Body.String())
}

func TestEmptyCollection(t *testing.T) {
	w := httptest.NewRecorder()
	CollectionOf(accountResource, nil).Respond(w)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}
