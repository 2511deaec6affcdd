package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOperation(t *testing.T) {
	ok := testutil.ToFloat64(OperationsTotal.WithLabelValues("test_op", OutcomeSuccess))
	failed := testutil.ToFloat64(OperationsTotal.WithLabelValues("test_op", OutcomeError))

	RecordOperation("test_op", nil, 20*time.Millisecond)
	RecordOperation("test_op", errors.New("boom"), 5*time.Millisecond)
	RecordOperation("test_op", nil, time.Millisecond)

	assert.Equal(t, ok+2, testutil.ToFloat64(OperationsTotal.WithLabelValues("test_op", OutcomeSuccess)))
	assert.Equal(t, failed+1, testutil.ToFloat64(OperationsTotal.WithLabelValues("test_op", OutcomeError)))
	assert.Positive(t, testutil.CollectAndCount(OperationDuration, "maintenance_operation_duration_seconds"))
}

func TestSetCollectionSize(t *testing.T) {
	SetCollectionSize("test_collection", 12)
	assert.Equal(t, 12.0, testutil.ToFloat64(CollectionSize.WithLabelValues("test_collection")))

	SetCollectionSize("test_collection", 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(CollectionSize.WithLabelValues("test_collection")))
}

func TestRecordNotification(t *testing.T) {
	before := testutil.ToFloat64(NotificationsTotal.WithLabelValues("test", "destructive"))
	RecordNotification("test", "destructive")
	assert.Equal(t, before+1, testutil.ToFloat64(NotificationsTotal.WithLabelValues("test", "destructive")))
}
