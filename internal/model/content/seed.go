package content

// Seed returns the built-in ward tables used when no content file is given.
func Seed() Tables {
	return Tables{
		Emergency: []Entry{
			{Keyword: "응급", Text: "응급상황입니다! 즉시 응급의학과 당직의(내선 119)를 호출하세요."},
			{Keyword: "화재", Text: "화재 발생! 119에 신고하고 비상구 안내에 따라 환자를 대피시키세요."},
			{Keyword: "코드블루", Text: "코드블루! 심폐소생술팀(내선 7777)을 즉시 호출하고 가슴압박을 시작하세요."},
			{Keyword: "낙상", Text: "환자 낙상 발생! 환자를 움직이지 말고 의식과 활력징후를 확인한 뒤 담당의에게 보고하세요."},
		},
		Greetings: Greetings{
			Triggers: []string{"안녕", "hello", "hi", "반가워", "처음", "시작", "헬로"},
			Variants: []string{
				"무엇을 도와드릴까요?",
				"오늘도 수고 많으십니다. 필요한 것이 있으면 말씀해주세요.",
				"간호 업무 도우미입니다. 궁금한 점을 물어보세요.",
			},
			TimeOfDay: TimeOfDay{
				Morning:   "좋은 아침입니다!",
				Afternoon: "좋은 오후입니다!",
				Evening:   "좋은 저녁입니다!",
				Night:     "늦은 시간까지 고생 많으십니다!",
			},
		},
		FAQ: []Entry{
			{Keyword: "교대시간", Text: "근무 교대 시간은 07:00, 15:00, 23:00입니다. 인수인계는 교대 15분 전까지 마쳐주세요."},
			{Keyword: "투약시간", Text: "정규 투약 시간은 09:00, 13:00, 18:00, 21:00입니다. 처방에 따른 예외는 EMR 투약기록을 확인하세요."},
			{Keyword: "휴가", Text: "휴가 신청은 최소 2주 전에 수간호사에게 전자결재로 제출해야 합니다."},
			{Keyword: "주차", Text: "직원 주차장은 본관 지하 2층과 3층입니다. 주차권은 총무팀에서 발급합니다."},
			{Keyword: "식당", Text: "직원 식당은 지하 1층에 있으며 야간 근무자 식사는 01:00부터 제공됩니다."},
			{Keyword: "비밀번호", Text: "EMR 비밀번호 초기화는 전산팀(내선 2400)으로 본인 확인 후 요청하세요."},
		},
		Contacts: ContactRules{
			Triggers: []string{"연락처", "번호", "내선"},
			ListAll:  []string{"전체", "모든"},
		},
		Departments: []Department{
			{Name: "간호부", Contact: "내선 1200"},
			{Name: "원무과", Contact: "내선 1100"},
			{Name: "약제부", Contact: "내선 2200"},
			{Name: "전산팀", Contact: "내선 2400"},
			{Name: "시설팀", Contact: "내선 3300"},
			{Name: "구매팀", Contact: "내선 4400"},
			{Name: "중환자실", Contact: "내선 5500"},
		},
		Categories: []Category{
			{
				Name:     "수리물품",
				Keywords: []string{"고장", "수리", "장비", "교체", "파손"},
				Responses: []string{
					"장비 고장은 시설팀(내선 3300)에 접수해주세요. 접수 후 담당자가 병동으로 방문합니다.",
					"수리 요청 시 장비명과 자산번호를 함께 알려주시면 처리가 빨라집니다.",
					"긴급 장비는 중앙공급실에서 대체품을 먼저 대여할 수 있습니다.",
				},
			},
			{
				Name:     "의약품",
				Keywords: []string{"약물", "투약", "처방", "약품", "주사"},
				Responses: []string{
					"처방 관련 문의는 약제부(내선 2200)로 연락해주세요.",
					"투약 전 환자 확인, 약물, 용량, 경로, 시간을 다시 한 번 확인하세요.",
					"고위험 약물은 두 명의 간호사가 이중 확인 후 투약해야 합니다.",
				},
			},
			{
				Name:     "재무총무",
				Keywords: []string{"예산", "구매", "계약", "비용", "청구"},
				Responses: []string{
					"물품 구매 요청은 구매팀(내선 4400)에 전자결재로 올려주세요.",
					"병동 예산 현황은 매월 첫째 주 수간호사 회의에서 공유됩니다.",
				},
			},
			{
				Name:     "업무지휘",
				Keywords: []string{"일정", "회의", "보고", "근무표", "지시"},
				Responses: []string{
					"이번 주 병동 회의는 목요일 14:00 간호부 회의실에서 진행됩니다.",
					"근무표는 간호부 인트라넷 게시판에서 확인할 수 있습니다.",
					"보고 사항은 SBAR 형식으로 정리해 수간호사에게 전달해주세요.",
				},
			},
			{
				Name:     "ICU",
				Keywords: []string{"icu", "중환자", "인공호흡기", "모니터링"},
				Responses: []string{
					"ICU 전동은 중환자실(내선 5500) 책임간호사와 병상 확인 후 진행하세요.",
					"인공호흡기 알람 시 환자 상태를 먼저 확인하고 호흡치료사를 호출하세요.",
				},
			},
			{
				Name:     "전송백업",
				Keywords: []string{"파일", "백업", "전송", "데이터", "저장"},
				Responses: []string{
					"EMR 데이터 전송 오류는 전산팀(내선 2400)으로 문의해주세요.",
					"병동 공유 파일은 매일 02:00에 자동 백업됩니다.",
				},
			},
		},
		Defaults: []string{
			"죄송합니다. 이해하지 못했습니다. '도움말'을 입력하면 사용 가능한 기능을 볼 수 있습니다.",
			"조금 더 구체적으로 말씀해주시겠어요?",
			"해당 내용은 아직 준비되지 않았습니다. 간호부(내선 1200)로 문의해주세요.",
		},
		Names: DefaultNameRules(),
	}
}

// DefaultNameRules returns the Korean name-registration rules.
func DefaultNameRules() NameRules {
	return NameRules{
		Trigger: "이름",
		Declarative: NamePattern{
			Markers:  []string{"이름은", "이름는"},
			Suffixes: []string{"입니다", ".", "예요"},
		},
		Imperative: NamePattern{
			Markers:  []string{"불러", "부르"},
			Suffixes: []string{"라고", "으로", "님"},
		},
		Excluded:  []string{"이름"},
		MaxLength: 10,
	}
}
