package noticeapi

import "github.com/debemdeboas/notice-desk/internal/model"

type partiesBody struct {
	Party1Name    string `json:"party1_name"`
	Party1Address string `json:"party1_address"`
	Party2Name    string `json:"party2_name"`
	Party2Address string `json:"party2_address"`
	Issue         string `json:"issue"`
}

func newPartiesBody(p1, p2 model.Party, issue string) partiesBody {
	return partiesBody{
		Party1Name:    p1.Name,
		Party1Address: p1.Address,
		Party2Name:    p2.Name,
		Party2Address: p2.Address,
		Issue:         issue,
	}
}

type noticeBody struct {
	partiesBody
	Template string `json:"template"`
}

func newNoticeBody(req model.NoticeRequest) noticeBody {
	return noticeBody{
		partiesBody: newPartiesBody(req.Party1, req.Party2, req.Issue),
		Template:    req.Template,
	}
}

type draftBody struct {
	DraftText string `json:"draft_text"`
	partiesBody
}

func newDraftBody(req model.DraftRequest) draftBody {
	return draftBody{
		DraftText:   req.DraftText,
		partiesBody: newPartiesBody(req.Party1, req.Party2, req.Issue),
	}
}

type emailBody struct {
	draftBody
	RecipientEmail string `json:"recipient_email"`
}

type templatesResponse struct {
	Templates []string `json:"templates"`
}

type templateResponse struct {
	Template string `json:"template"`
}

type draftResponse struct {
	DraftText string `json:"draft_text"`
}

type saveResponse struct {
	ID     model.NoticeID `json:"id"`
	Status string         `json:"status"`
}

type historyResponse struct {
	History []model.HistoryEntry `json:"history"`
}

type emailResponse struct {
	Status    string `json:"status"`
	Recipient string `json:"recipient"`
}
