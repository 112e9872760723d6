package mail

import (
	"fmt"

	"app/internal/domain/model"

	gomail "gopkg.in/gomail.v2"
)

// GomailSender はSMTPでステータス変更メールを送る。
type GomailSender struct {
	dialer   *gomail.Dialer
	from     string
	orderURL string
}

func NewGomailSender(host string, port int, user string, password string, from string, orderURL string) *GomailSender {
	return &GomailSender{
		dialer:   gomail.NewDialer(host, port, user, password),
		from:     from,
		orderURL: orderURL,
	}
}

func (s *GomailSender) SendStatusMail(to string, status model.OrderStatus) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "[Cafe Management] 주문 상태 변경 안내")

	body := fmt.Sprintf(
		"<h3>고객님의 주문 상태가 [%s]으로 변경되었습니다.</h3>"+
			"<p>배송 상태 확인 >> <a href='%s'>Link</a> << </p>",
		status.Label(), s.orderURL,
	)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send status mail: %w", err)
	}
	return nil
}
