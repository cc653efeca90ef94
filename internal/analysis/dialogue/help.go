package dialogue

// HelpText is the usage guide returned by Engine.Help. It lists the seeded
// categories; keep it in step with content.Seed.
const HelpText = `🏥 병원 간호사 도우미 챗봇 사용법

📋 주요 기능:
• 수리물품: 장비 수리, 고장 문의
• 의약품: 처방, 투약 관련 문의
• 재무총무: 예산, 구매, 계약 문의
• 업무지휘: 일정, 회의, 보고 관련
• ICU: 중환자실 관련 문의
• 전송백업: 파일, 데이터 관련

💬 사용 예시:
• "장비가 고장났어요"
• "약물 투약 시간 알려주세요"
• "회의 일정 확인해주세요"
• "약제부 연락처 알려주세요"
• "전체 연락처"
• "제 이름은 홍길동입니다"

🆘 응급상황:
• "응급", "화재", "코드블루" 등의 키워드 사용`
