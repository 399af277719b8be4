package reindeer

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Reindeer represents the data model for a reindeer
type Reindeer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Speed       int     `json:"speed"`
	Skill       *string `json:"skill,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Item maps the reindeer to DynamoDB attribute values. Unset optional fields are left out.
func (r Reindeer) Item() map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"id":    &types.AttributeValueMemberS{Value: r.ID}, // Partition Key
		"name":  &types.AttributeValueMemberS{Value: r.Name},
		"speed": &types.AttributeValueMemberN{Value: strconv.Itoa(r.Speed)},
	}
	if r.Skill != nil {
		item["skill"] = &types.AttributeValueMemberS{Value: *r.Skill}
	}
	if r.Description != nil {
		item["description"] = &types.AttributeValueMemberS{Value: *r.Description}
	}
	return item
}

// FromItem is the reverse of Item.
func FromItem(item map[string]types.AttributeValue) (Reindeer, error) {
	var r Reindeer
	for name, av := range item {
		switch name {
		case "id":
			s, err := stringAttr(name, av)
			if err != nil {
				return r, err
			}
			r.ID = s
		case "name":
			s, err := stringAttr(name, av)
			if err != nil {
				return r, err
			}
			r.Name = s
		case "speed":
			n, ok := av.(*types.AttributeValueMemberN)
			if !ok {
				return r, fmt.Errorf("attribute %s: expected number, got %T", name, av)
			}
			speed, err := strconv.Atoi(n.Value)
			if err != nil {
				return r, fmt.Errorf("attribute %s: %w", name, err)
			}
			r.Speed = speed
		case "skill", "description":
			if _, ok := av.(*types.AttributeValueMemberNULL); ok {
				continue
			}
			s, err := stringAttr(name, av)
			if err != nil {
				return r, err
			}
			if name == "skill" {
				r.Skill = &s
			} else {
				r.Description = &s
			}
		}
	}
	return r, nil
}

func stringAttr(name string, av types.AttributeValue) (string, error) {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("attribute %s: expected string, got %T", name, av)
	}
	return s.Value, nil
}
