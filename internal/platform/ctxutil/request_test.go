package ctxutil

import (
	"context"
	"reflect"
	"testing"
)

func TestRequestInfoAccumulates(t *testing.T) {
	ctx := WithTrace(context.Background(), "t1", "r1")
	ctx = WithUserID(ctx, "ana")

	got := Info(ctx)
	want := RequestInfo{TraceID: "t1", RequestID: "r1", UserID: "ana"}
	if got != want {
		t.Fatalf("info: got=%+v want=%+v", got, want)
	}
	fields := got.LogFields()
	if !reflect.DeepEqual(fields, []interface{}{"trace_id", "t1", "request_id", "r1", "user_id", "ana"}) {
		t.Fatalf("fields: %v", fields)
	}
}

func TestInfoOnBareContext(t *testing.T) {
	if got := UserID(context.Background()); got != "" {
		t.Fatalf("user id: %q", got)
	}
	if fields := Info(nil).LogFields(); len(fields) != 0 {
		t.Fatalf("fields: %v", fields)
	}
}
