package respond

import (
	"time"

	"yuanfen_chat_server/internal/model"
)

// NotificationRespond 通知视图
type NotificationRespond struct {
	Id            int64     `json:"id"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	ReferenceId   int64     `json:"referenceId"`
	ReferenceType string    `json:"referenceType"`
	IsRead        bool      `json:"isRead"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewNotificationRespondList 批量转换通知实体
func NewNotificationRespondList(notifications []model.Notification) []*NotificationRespond {
	list := make([]*NotificationRespond, 0, len(notifications))
	for _, n := range notifications {
		list = append(list, &NotificationRespond{
			Id:            n.Id,
			Type:          n.Type,
			Content:       n.Content,
			ReferenceId:   n.ReferenceId,
			ReferenceType: n.ReferenceType,
			IsRead:        n.IsRead,
			CreatedAt:     n.CreatedAt,
		})
	}
	return list
}
