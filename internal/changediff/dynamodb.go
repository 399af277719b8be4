package changediff

import (
	"github.com/aws/aws-lambda-go/events"
)

// FromDynamoDBEvent converts a DynamoDB stream delivery into a batch, keeping record order.
func FromDynamoDBEvent(event events.DynamoDBEvent) ChangeBatch {
	batch := ChangeBatch{Records: make([]ChangeRecord, 0, len(event.Records))}
	for _, record := range event.Records {
		batch.Records = append(batch.Records, ChangeRecord{
			Operation: ParseOperationKind(record.EventName),
			EventID:   record.EventID,
			Keys:      imageFromAttributes(record.Change.Keys),
			OldImage:  imageFromAttributes(record.Change.OldImage),
			NewImage:  imageFromAttributes(record.Change.NewImage),
		})
	}
	return batch
}

func imageFromAttributes(attrs map[string]events.DynamoDBAttributeValue) Image {
	if attrs == nil {
		return nil
	}
	image := make(Image, len(attrs))
	for name, av := range attrs {
		image[name] = FromAttribute(av)
	}
	return image
}

// FromAttribute converts a stream attribute value. Sets, lists and maps are not
// scalars and come back invalid, tagged with their DynamoDB type name.
func FromAttribute(av events.DynamoDBAttributeValue) Value {
	switch av.DataType() {
	case events.DataTypeString:
		return String(av.String())
	case events.DataTypeNumber:
		return Number(av.Number())
	case events.DataTypeBinary:
		return Binary(av.Binary())
	case events.DataTypeBoolean:
		return Bool(av.Boolean())
	case events.DataTypeNull:
		return Null()
	case events.DataTypeStringSet:
		return Unsupported("SS")
	case events.DataTypeNumberSet:
		return Unsupported("NS")
	case events.DataTypeBinarySet:
		return Unsupported("BS")
	case events.DataTypeList:
		return Unsupported("L")
	case events.DataTypeMap:
		return Unsupported("M")
	default:
		return Value{}
	}
}
