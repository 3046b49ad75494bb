package sqlinline

const QSelectUserTeamIDs = `--sql d79a7e86-725e-4135-9f6d-e4d4cbc6db04
select team_id
from memberships
where user_id = $1;
`
